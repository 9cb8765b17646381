package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func listPromptsTool() mcp.Tool {
	return mcp.NewTool("list_bedrock_prompts",
		mcp.WithDescription("List available Bedrock managed prompts from your AWS account. Returns prompt names, IDs, descriptions, and metadata."),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of prompts to return (1-100, default 20)"),
			mcp.Min(1),
			mcp.Max(100),
			mcp.DefaultNumber(20),
		),
		mcp.WithString("next_token",
			mcp.Description("Pagination token from a previous response"),
		),
	)
}

func getPromptDetailsTool() mcp.Tool {
	return mcp.NewTool("get_bedrock_prompt_details",
		mcp.WithDescription("Get detailed information about a specific Bedrock prompt, including its template, variables, variants, and model configuration."),
		mcp.WithString("prompt_identifier",
			mcp.Description("The prompt ID or ARN"),
			mcp.Required(),
		),
		mcp.WithString("prompt_version",
			mcp.Description("Specific version to fetch (defaults to the draft version)"),
		),
	)
}

func invokePromptTool() mcp.Tool {
	return mcp.NewTool("invoke_bedrock_prompt",
		mcp.WithDescription("Invoke a Bedrock managed prompt with variables and get the model's response. Automatically handles template substitution and model invocation. Supports Claude, Titan, Llama, Mistral, Cohere, and AI21 models."),
		mcp.WithString("prompt_identifier",
			mcp.Description("The prompt ID or ARN"),
			mcp.Required(),
		),
		mcp.WithObject("prompt_variables",
			mcp.Description("Values for the template variables, keyed by variable name"),
			mcp.AdditionalProperties(map[string]any{"type": "string"}),
		),
		mcp.WithString("prompt_version",
			mcp.Description("Specific version to invoke (defaults to the draft version)"),
		),
	)
}

func invokePromptStreamTool() mcp.Tool {
	return mcp.NewTool("invoke_bedrock_prompt_stream",
		mcp.WithDescription("Invoke a Bedrock managed prompt with streaming response. Returns the full response along with the individual chunks as they arrived."),
		mcp.WithString("prompt_identifier",
			mcp.Description("The prompt ID or ARN"),
			mcp.Required(),
		),
		mcp.WithObject("prompt_variables",
			mcp.Description("Values for the template variables, keyed by variable name"),
			mcp.AdditionalProperties(map[string]any{"type": "string"}),
		),
		mcp.WithString("prompt_version",
			mcp.Description("Specific version to invoke (defaults to the draft version)"),
		),
	)
}

func batchInvokePromptTool() mcp.Tool {
	return mcp.NewTool("batch_invoke_bedrock_prompt",
		mcp.WithDescription("Invoke a Bedrock managed prompt concurrently with multiple variable sets. Results keep the order of the input sets; failures are isolated per set."),
		mcp.WithString("prompt_identifier",
			mcp.Description("The prompt ID or ARN"),
			mcp.Required(),
		),
		mcp.WithArray("variable_sets",
			mcp.Description("One object of template variables per invocation"),
			mcp.Required(),
			mcp.Items(map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			}),
		),
		mcp.WithString("prompt_version",
			mcp.Description("Specific version to invoke (defaults to the draft version)"),
		),
		mcp.WithNumber("max_workers",
			mcp.Description("Maximum concurrent invocations (1-10, default 5)"),
			mcp.Min(1),
			mcp.Max(10),
			mcp.DefaultNumber(5),
		),
	)
}

func listPromptVersionsTool() mcp.Tool {
	return mcp.NewTool("list_bedrock_prompt_versions",
		mcp.WithDescription("List all versions of a specific Bedrock prompt with their metadata."),
		mcp.WithString("prompt_identifier",
			mcp.Description("The prompt ID or ARN"),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of versions to return (1-100, default 20)"),
			mcp.Min(1),
			mcp.Max(100),
			mcp.DefaultNumber(20),
		),
	)
}
