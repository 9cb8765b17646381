// Package catalog reads prompt metadata from an abstract prompt store:
// listing prompts, fetching one prompt's full document, and listing its
// versions. Reads are pass-throughs; the documents are not interpreted
// here.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Page size bounds for list operations. Values outside the range are
// clamped; zero takes the default.
const (
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// PromptPage is one page of prompt or version summaries, with the
// pagination token for the next page when there is one.
type PromptPage struct {
	Summaries []map[string]any
	NextToken string
}

// PromptStore is the prompt-catalog read capability.
type PromptStore interface {
	// ListPrompts returns one page of prompt summaries.
	ListPrompts(ctx context.Context, maxResults int32, nextToken string) (*PromptPage, error)

	// GetPrompt returns the full prompt document. version may be empty for
	// the working draft.
	GetPrompt(ctx context.Context, promptID, version string) (map[string]any, error)

	// ListPromptVersions returns one page of version summaries for a
	// prompt.
	ListPromptVersions(ctx context.Context, promptID string, maxResults int32) (*PromptPage, error)
}

// Service exposes catalog reads with page-size clamping and logging.
type Service struct {
	store  PromptStore
	logger zerolog.Logger
}

// NewService creates a Service over the given store.
func NewService(store PromptStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// List returns one page of prompt summaries.
func (s *Service) List(ctx context.Context, maxResults int, nextToken string) (*PromptPage, error) {
	size := clampPageSize(maxResults)
	s.logger.Debug().Int("max_results", size).Bool("paginated", nextToken != "").Msg("listing prompts")

	page, err := s.store.ListPrompts(ctx, int32(size), nextToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing prompts failed")
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return page, nil
}

// Get returns the full prompt document for one prompt, optionally at a
// specific version.
func (s *Service) Get(ctx context.Context, promptID, version string) (map[string]any, error) {
	s.logger.Debug().Str("prompt_id", promptID).Str("version", version).Msg("fetching prompt")

	doc, err := s.store.GetPrompt(ctx, promptID, version)
	if err != nil {
		s.logger.Error().Err(err).Str("prompt_id", promptID).Msg("fetching prompt failed")
		return nil, fmt.Errorf("get prompt %s: %w", promptID, err)
	}
	return doc, nil
}

// Versions returns one page of version summaries for a prompt.
func (s *Service) Versions(ctx context.Context, promptID string, maxResults int) (*PromptPage, error) {
	size := clampPageSize(maxResults)
	s.logger.Debug().Str("prompt_id", promptID).Int("max_results", size).Msg("listing prompt versions")

	page, err := s.store.ListPromptVersions(ctx, promptID, int32(size))
	if err != nil {
		s.logger.Error().Err(err).Str("prompt_id", promptID).Msg("listing prompt versions failed")
		return nil, fmt.Errorf("list versions of prompt %s: %w", promptID, err)
	}
	return page, nil
}

func clampPageSize(n int) int {
	switch {
	case n == 0:
		return DefaultPageSize
	case n < MinPageSize:
		return MinPageSize
	case n > MaxPageSize:
		return MaxPageSize
	default:
		return n
	}
}
