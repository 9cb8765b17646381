package provider

// buildMistralRequest shapes the flat Mistral AI body.
func buildMistralRequest(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"prompt":      filled,
		"max_tokens":  cfg.MaxTokens(),
		"temperature": cfg.Temperature(),
		"top_p":       cfg.TopP(),
		"stop":        stopSequencesOrEmpty(cfg),
	}
	return mergeExtra(doc, extra)
}

// parseMistralResponse extracts outputs[0].text.
func parseMistralResponse(doc map[string]any) string {
	return docString(firstMap(doc, "outputs"), "text")
}

// decodeMistralChunk extracts outputs[0].text from one streaming chunk.
func decodeMistralChunk(doc map[string]any) string {
	return docString(firstMap(doc, "outputs"), "text")
}
