package provider

// buildLlamaRequest shapes the flat Meta Llama body. Llama has no stop
// sequence field in its Bedrock format.
func buildLlamaRequest(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"prompt":      filled,
		"max_gen_len": cfg.MaxTokens(),
		"temperature": cfg.Temperature(),
		"top_p":       cfg.TopP(),
	}
	return mergeExtra(doc, extra)
}

// parseLlamaResponse extracts the generation field.
func parseLlamaResponse(doc map[string]any) string {
	return docString(doc, "generation")
}

// decodeLlamaChunk extracts the generation delta from one streaming chunk;
// Llama stream chunks use the same field as the full response.
func decodeLlamaChunk(doc map[string]any) string {
	return docString(doc, "generation")
}
