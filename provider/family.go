package provider

import "strings"

// Family identifies the model family a Bedrock model identifier belongs to.
// The family decides which request builder and response parser apply.
type Family string

const (
	FamilyAnthropic Family = "anthropic"
	FamilyTitan     Family = "titan"
	FamilyLlama     Family = "llama"
	FamilyMistral   Family = "mistral"
	FamilyCohere    Family = "cohere"
	FamilyAI21      Family = "ai21"
	FamilyUnknown   Family = "unknown"
)

// Resolve derives the model family from a model identifier or ARN.
//
// Matching is case-insensitive substring detection in a fixed order; the
// first match wins. The order below is part of the contract — identifiers
// that could match several markers (none exist in Bedrock's catalog today)
// resolve to the earliest entry.
//
// Resolve is pure. Resolving to FamilyUnknown is not an error by itself;
// BuildRequest rejects FamilyUnknown with UnsupportedProviderError.
func Resolve(modelID string) Family {
	id := strings.ToLower(modelID)

	switch {
	case strings.Contains(id, "claude") || strings.Contains(id, "anthropic"):
		return FamilyAnthropic
	case strings.Contains(id, "titan"):
		return FamilyTitan
	case strings.Contains(id, "llama") || strings.Contains(id, "meta"):
		return FamilyLlama
	case strings.Contains(id, "mistral"):
		return FamilyMistral
	case strings.Contains(id, "cohere"):
		return FamilyCohere
	case strings.Contains(id, "ai21") || strings.Contains(id, "jurassic"):
		return FamilyAI21
	default:
		return FamilyUnknown
	}
}

// Supported reports whether the family has a builder/parser pair.
func (f Family) Supported() bool {
	switch f {
	case FamilyAnthropic, FamilyTitan, FamilyLlama, FamilyMistral, FamilyCohere, FamilyAI21:
		return true
	default:
		return false
	}
}

// String returns the family tag.
func (f Family) String() string {
	return string(f)
}
