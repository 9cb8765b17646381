package provider

import "github.com/spf13/cast"

// anthropicVersion is the Bedrock API version marker required in every
// Anthropic request body.
const anthropicVersion = "bedrock-2023-05-31"

// buildAnthropicRequest shapes the Messages API body Anthropic models accept
// on Bedrock: the filled template becomes a single user message.
func buildAnthropicRequest(filled string, cfg InferenceConfig, extra map[string]any) map[string]any {
	doc := map[string]any{
		"anthropic_version": anthropicVersion,
		"max_tokens":        cfg.MaxTokens(),
		"temperature":       cfg.Temperature(),
		"top_p":             cfg.TopP(),
		"messages": []map[string]any{
			{"role": "user", "content": filled},
		},
	}

	// Anthropic rejects non-integer top_k values.
	if v, ok := extra["top_k"]; ok {
		if k, err := cast.ToIntE(v); err == nil {
			doc["top_k"] = k
		}
	}

	if seqs := cfg.StopSequences(); len(seqs) > 0 {
		doc["stop_sequences"] = seqs
	}

	return mergeExtra(doc, extra)
}

// parseAnthropicResponse extracts completion text from the content block
// list: content[0].text.
func parseAnthropicResponse(doc map[string]any) string {
	return docString(firstMap(doc, "content"), "text")
}

// decodeAnthropicChunk extracts text from one streaming event. Only
// content_block_delta events carry completion text; every other event type
// (message_start, content_block_start, message_delta, ...) contributes
// nothing.
func decodeAnthropicChunk(doc map[string]any) string {
	if docString(doc, "type") != "content_block_delta" {
		return ""
	}
	return docString(docMap(doc, "delta"), "text")
}
