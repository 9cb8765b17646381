package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptkit/bedrockd/catalog"
	"github.com/promptkit/bedrockd/invoke"
)

func (t *Toolset) listPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxResults := request.GetInt("max_results", catalog.DefaultPageSize)
	nextToken := request.GetString("next_token", "")

	page, err := t.catalog.List(ctx, maxResults, nextToken)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"success":   true,
		"prompts":   summaries(page),
		"nextToken": tokenOrNil(page.NextToken),
	}), nil
}

func (t *Toolset) getPromptDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_identifier")
	if err != nil {
		return errorResult(err), nil
	}
	version := request.GetString("prompt_version", "")

	doc, err := t.catalog.Get(ctx, promptID, version)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"prompt":  doc,
	}), nil
}

func (t *Toolset) invokePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_identifier")
	if err != nil {
		return errorResult(err), nil
	}
	version := request.GetString("prompt_version", "")
	vars := stringMapArg(request, "prompt_variables")

	resolved, err := t.resolve(ctx, promptID, version)
	if err != nil {
		return errorResult(err), nil
	}

	res, err := t.engine.Invoke(ctx, invoke.Request{
		ModelID:   resolved.ModelID,
		Template:  resolved.Template,
		Variables: vars,
		Inference: resolved.Inference,
		Extra:     resolved.Extra,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(invokeEnvelope(res, promptID)), nil
}

func (t *Toolset) invokePromptStream(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_identifier")
	if err != nil {
		return errorResult(err), nil
	}
	version := request.GetString("prompt_version", "")
	vars := stringMapArg(request, "prompt_variables")

	resolved, err := t.resolve(ctx, promptID, version)
	if err != nil {
		return errorResult(err), nil
	}

	res, err := t.engine.InvokeStream(ctx, invoke.Request{
		ModelID:   resolved.ModelID,
		Template:  resolved.Template,
		Variables: vars,
		Inference: resolved.Inference,
		Extra:     resolved.Extra,
	})
	if err != nil {
		// A failed stream may still have produced chunks; surface them so
		// partial output is not lost.
		if res == nil {
			return errorResult(err), nil
		}
		return jsonResult(map[string]any{
			"success":     false,
			"error":       err.Error(),
			"completion":  res.Completion,
			"chunks":      chunksOrEmpty(res.Chunks),
			"chunk_count": len(res.Chunks),
			"model_id":    res.ModelID,
			"model_type":  res.Family.String(),
			"prompt_id":   promptID,
		}), nil
	}
	return jsonResult(map[string]any{
		"success":     true,
		"completion":  res.Completion,
		"chunks":      chunksOrEmpty(res.Chunks),
		"chunk_count": len(res.Chunks),
		"model_id":    res.ModelID,
		"model_type":  res.Family.String(),
		"prompt_id":   promptID,
	}), nil
}

func (t *Toolset) batchInvokePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_identifier")
	if err != nil {
		return errorResult(err), nil
	}
	sets, ok := variableSetsArg(request)
	if !ok {
		return errorText("variable_sets must be an array of variable objects"), nil
	}
	version := request.GetString("prompt_version", "")
	workers := request.GetInt("max_workers", t.opts.BatchWorkers)

	resolved, err := t.resolve(ctx, promptID, version)
	if err != nil {
		return errorResult(err), nil
	}

	t.logger.Info().
		Str("prompt_id", promptID).
		Int("variable_sets", len(sets)).
		Int("max_workers", workers).
		Msg("starting batch invocation")

	outcome := t.engine.InvokeBatch(ctx, invoke.BatchRequest{
		ModelID:        resolved.ModelID,
		Template:       resolved.Template,
		Inference:      resolved.Inference,
		Extra:          resolved.Extra,
		VariableSets:   sets,
		MaxWorkers:     workers,
		PerItemTimeout: t.opts.BatchTimeout,
	})

	results := make([]any, 0, outcome.Succeeded)
	failures := make([]any, 0, outcome.Failed)
	for i, item := range outcome.Results {
		if item.Succeeded() {
			results = append(results, map[string]any{
				"index":     i,
				"variables": sets[i],
				"success":   true,
				"result":    invokeEnvelope(item.Result, promptID),
			})
			continue
		}
		failures = append(failures, map[string]any{
			"index":     item.Error.Index,
			"variables": item.Error.Variables,
			"success":   false,
			"kind":      item.Error.Kind,
			"error":     item.Error.Message,
		})
	}

	return jsonResult(map[string]any{
		"success":           true,
		"total_invocations": outcome.Total,
		"successful":        outcome.Succeeded,
		"failed":            outcome.Failed,
		"results":           results,
		"errors":            failures,
		"prompt_id":         promptID,
	}), nil
}

func (t *Toolset) listPromptVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	promptID, err := request.RequireString("prompt_identifier")
	if err != nil {
		return errorResult(err), nil
	}
	maxResults := request.GetInt("max_results", catalog.DefaultPageSize)

	page, err := t.catalog.Versions(ctx, promptID, maxResults)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"success":   true,
		"versions":  summaries(page),
		"nextToken": tokenOrNil(page.NextToken),
	}), nil
}

// invokeEnvelope is the success payload shared by single and batch
// invocations.
func invokeEnvelope(res *invoke.Result, promptID string) map[string]any {
	return map[string]any{
		"success":         true,
		"completion":      res.Completion,
		"model_id":        res.ModelID,
		"model_type":      res.Family.String(),
		"prompt_id":       promptID,
		"filled_template": res.FilledTemplate,
		"metadata": map[string]any{
			"response_body": res.Raw,
			"request_id":    res.RequestID,
		},
	}
}

func summaries(page *catalog.PromptPage) []map[string]any {
	if page.Summaries == nil {
		return []map[string]any{}
	}
	return page.Summaries
}

func chunksOrEmpty(chunks []string) []string {
	if chunks == nil {
		return []string{}
	}
	return chunks
}
