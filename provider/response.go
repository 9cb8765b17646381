package provider

// ParseResponse extracts the completion text from a decoded response
// document using the extraction path of the given family.
//
// Missing or malformed fields yield an empty string rather than an error:
// parse shortfalls are non-fatal so one odd response cannot sink a batch.
// An empty completion is still a transport-level success; callers may treat
// it as suspect.
func ParseResponse(f Family, doc map[string]any) string {
	switch f {
	case FamilyAnthropic:
		return parseAnthropicResponse(doc)
	case FamilyTitan:
		return parseTitanResponse(doc)
	case FamilyLlama:
		return parseLlamaResponse(doc)
	case FamilyMistral:
		return parseMistralResponse(doc)
	case FamilyCohere:
		return parseCohereResponse(doc)
	case FamilyAI21:
		return parseAI21Response(doc)
	default:
		return ""
	}
}

// DecodeChunk extracts the text delta from one decoded streaming chunk using
// the chunk shape of the given family. Chunks are partial documents, not
// full responses — several families stream a different nesting than they
// answer with. A chunk that carries no text (unknown event type, missing
// field) decodes to the empty string and contributes nothing.
func DecodeChunk(f Family, doc map[string]any) string {
	switch f {
	case FamilyAnthropic:
		return decodeAnthropicChunk(doc)
	case FamilyTitan:
		return decodeTitanChunk(doc)
	case FamilyLlama:
		return decodeLlamaChunk(doc)
	case FamilyMistral:
		return decodeMistralChunk(doc)
	case FamilyCohere:
		return decodeCohereChunk(doc)
	case FamilyAI21:
		return decodeAI21Chunk(doc)
	default:
		return ""
	}
}

// docString returns m[key] as a string, or "" when absent or differently
// typed.
func docString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// docMap returns m[key] as a map, or nil when absent or differently typed.
func docMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

// firstMap returns the first element of the list at m[key] as a map, or nil
// when the list is absent, empty, or holds something else.
func firstMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	list, _ := m[key].([]any)
	if len(list) == 0 {
		return nil
	}
	v, _ := list[0].(map[string]any)
	return v
}
