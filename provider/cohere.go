package provider

// buildCohereRequest shapes the Cohere command body. Cohere names its
// nucleus sampling parameter "p".
func buildCohereRequest(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"prompt":         filled,
		"max_tokens":     cfg.MaxTokens(),
		"temperature":    cfg.Temperature(),
		"p":              cfg.TopP(),
		"stop_sequences": stopSequencesOrEmpty(cfg),
	}
	return mergeExtra(doc, extra)
}

// parseCohereResponse extracts generations[0].text.
func parseCohereResponse(doc map[string]any) string {
	return docString(firstMap(doc, "generations"), "text")
}

// decodeCohereChunk extracts the text delta from one streaming chunk; Cohere
// stream chunks carry a bare text field rather than a generations list.
func decodeCohereChunk(doc map[string]any) string {
	return docString(doc, "text")
}
