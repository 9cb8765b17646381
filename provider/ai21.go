package provider

// buildAI21Request shapes the AI21 Jurassic body, camelCase fields.
func buildAI21Request(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"prompt":        filled,
		"maxTokens":     cfg.MaxTokens(),
		"temperature":   cfg.Temperature(),
		"topP":          cfg.TopP(),
		"stopSequences": stopSequencesOrEmpty(cfg),
	}
	return mergeExtra(doc, extra)
}

// parseAI21Response extracts completions[0].data.text.
func parseAI21Response(doc map[string]any) string {
	return docString(docMap(firstMap(doc, "completions"), "data"), "text")
}

// decodeAI21Chunk extracts text from one streaming chunk using the response
// nesting; AI21 chunks mirror the full-response shape.
func decodeAI21Chunk(doc map[string]any) string {
	return parseAI21Response(doc)
}
