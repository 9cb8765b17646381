package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/promptkit/bedrockd/prompt"
	"github.com/promptkit/bedrockd/provider"
)

// InvokeStream runs the invocation pipeline against the streaming
// capability and consumes the stream synchronously. Each chunk is decoded
// with the family's chunk shape; chunks that carry no text are skipped.
//
// When the stream fails midway the StreamResult holds every chunk decoded
// before the failure, returned alongside the wrapping *InvocationError so
// partial output is not lost. The stream is always closed.
func (c *Client) InvokeStream(ctx context.Context, req Request) (*StreamResult, error) {
	family := provider.Resolve(req.ModelID)
	if !family.Supported() {
		return nil, &provider.UnsupportedProviderError{ModelID: req.ModelID, Family: family}
	}

	if c.streamer == nil {
		return nil, &InvocationError{
			Op:      "invoke_stream",
			ModelID: req.ModelID,
			Cause:   errors.New("no streaming capability configured"),
		}
	}

	filled := prompt.Fill(req.Template, req.Variables)

	doc, err := provider.BuildRequest(family, filled, req.Inference, req.Extra)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, &InvocationError{Op: "invoke_stream", ModelID: req.ModelID, Cause: err}
	}

	requestID := uuid.NewString()
	logger := c.logger.With().
		Str("request_id", requestID).
		Str("model_id", req.ModelID).
		Str("family", family.String()).
		Logger()
	logger.Debug().Int("request_bytes", len(body)).Msg("invoking model stream")

	stream, err := c.streamer.InvokeModelStream(ctx, req.ModelID, body)
	if err != nil {
		logger.Error().Err(err).Msg("stream invocation failed")
		return nil, &InvocationError{Op: "invoke_stream", ModelID: req.ModelID, Cause: err}
	}
	defer stream.Close()

	result := &StreamResult{
		Result: Result{
			Family:         family,
			ModelID:        req.ModelID,
			FilledTemplate: filled,
			RequestID:      requestID,
		},
	}

	var completion strings.Builder
	for stream.Next() {
		var chunkDoc map[string]any
		if err := json.Unmarshal(stream.Chunk(), &chunkDoc); err != nil {
			logger.Warn().Err(err).Msg("skipping undecodable stream chunk")
			continue
		}
		text := provider.DecodeChunk(family, chunkDoc)
		if text == "" {
			continue
		}
		result.Chunks = append(result.Chunks, text)
		completion.WriteString(text)
	}
	result.Completion = completion.String()

	if err := stream.Err(); err != nil {
		logger.Error().Err(err).Int("chunks", len(result.Chunks)).Msg("stream ended with error")
		return result, &InvocationError{Op: "invoke_stream", ModelID: req.ModelID, Cause: err}
	}

	logger.Debug().
		Int("chunks", len(result.Chunks)).
		Int("completion_chars", len(result.Completion)).
		Msg("stream complete")
	return result, nil
}
