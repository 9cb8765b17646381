package prompt

import (
	"errors"

	"github.com/promptkit/bedrockd/provider"
)

// fallbackVariantName is assumed when a prompt document carries no
// defaultVariant field. Bedrock names the first variant of a console-created
// prompt this way.
const fallbackVariantName = "variantOne"

// Resolved is one prompt variant reduced to the pieces an invocation needs.
type Resolved struct {
	// VariantName is the name of the variant that was selected.
	VariantName string

	// Template is the raw template text, before variable substitution.
	Template string

	// ModelID is the model identifier configured on the variant.
	ModelID string

	// Inference carries the variant's provider-neutral generation settings.
	Inference provider.InferenceConfig

	// Extra holds additionalModelRequestFields, passed through to the
	// request document without interpretation.
	Extra map[string]any
}

// ResolutionError reports a prompt document that cannot yield a usable
// variant.
type ResolutionError struct {
	Missing string
}

func (e *ResolutionError) Error() string {
	return "no " + e.Missing + " found in prompt"
}

// IsResolutionError reports whether err is a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// ResolveVariant selects a variant from a prompt document and extracts its
// template, model id, inference configuration, and extra request fields.
//
// Selection order: the variant named by defaultVariant (or, when that field
// is absent, by the conventional fallback name), else the first variant,
// else a ResolutionError. A selected variant with no template text is also
// an error; everything else is optional.
func ResolveVariant(doc map[string]any) (*Resolved, error) {
	wantName := fallbackVariantName
	if s, ok := doc["defaultVariant"].(string); ok {
		wantName = s
	}

	variants, _ := doc["variants"].([]any)

	var chosen map[string]any
	for _, v := range variants {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if entryString(m, "name") == wantName {
			chosen = m
			break
		}
	}
	if chosen == nil && len(variants) > 0 {
		chosen, _ = variants[0].(map[string]any)
	}
	if chosen == nil {
		return nil, &ResolutionError{Missing: "variant"}
	}

	template := entryString(entryMap(entryMap(chosen, "templateConfiguration"), "text"), "text")
	if template == "" {
		return nil, &ResolutionError{Missing: "template text"}
	}

	return &Resolved{
		VariantName: entryString(chosen, "name"),
		Template:    template,
		ModelID:     entryString(chosen, "modelId"),
		Inference:   provider.InferenceConfig(entryMap(entryMap(chosen, "inferenceConfiguration"), "text")),
		Extra:       entryMap(chosen, "additionalModelRequestFields"),
	}, nil
}

// entryString returns m[key] as a string, or "" when absent or differently
// typed.
func entryString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// entryMap returns m[key] as a map, or nil when absent or differently typed.
func entryMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}
