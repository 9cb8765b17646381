package provider

// buildTitanRequest shapes the Amazon Titan text body: the prompt rides in
// inputText, generation settings in a nested textGenerationConfig object.
func buildTitanRequest(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"inputText": filled,
		"textGenerationConfig": map[string]any{
			"maxTokenCount": cfg.MaxTokens(),
			"temperature":   cfg.Temperature(),
			"topP":          cfg.TopP(),
			"stopSequences": stopSequencesOrEmpty(cfg),
		},
	}
	return mergeExtra(doc, extra)
}

// parseTitanResponse extracts results[0].outputText.
func parseTitanResponse(doc map[string]any) string {
	return docString(firstMap(doc, "results"), "outputText")
}

// decodeTitanChunk extracts outputText from one streaming chunk.
func decodeTitanChunk(doc map[string]any) string {
	return docString(doc, "outputText")
}
