package provider

// BuildRequest turns a filled template, inference settings, and pass-through
// extra fields into the native request document for the given family.
//
// Returns UnsupportedProviderError for FamilyUnknown (or any tag without a
// builder). Keys set by the family mapping always win over extra fields;
// extras fill in only what the mapping left unset.
func BuildRequest(f Family, filled string, cfg InferenceConfig, extra map[string]any) (map[string]any, error) {
	if cfg == nil {
		cfg = InferenceConfig{}
	}

	switch f {
	case FamilyAnthropic:
		return buildAnthropicRequest(filled, cfg, extra), nil
	case FamilyTitan:
		return buildTitanRequest(filled, cfg, extra), nil
	case FamilyLlama:
		return buildLlamaRequest(filled, cfg, extra), nil
	case FamilyMistral:
		return buildMistralRequest(filled, cfg, extra), nil
	case FamilyCohere:
		return buildCohereRequest(filled, cfg, extra), nil
	case FamilyAI21:
		return buildAI21Request(filled, cfg, extra), nil
	default:
		return nil, &UnsupportedProviderError{Family: f}
	}
}

// mergeExtra copies extra fields into doc without overwriting keys the family
// mapping already set.
func mergeExtra(doc, extra map[string]any) map[string]any {
	for k, v := range extra {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	return doc
}
