package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"
)

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool       mcp.Tool
		name       string
		required   []string
		properties []string
	}{
		{
			tool:       listPromptsTool(),
			name:       "list_bedrock_prompts",
			properties: []string{"max_results", "next_token"},
		},
		{
			tool:       getPromptDetailsTool(),
			name:       "get_bedrock_prompt_details",
			required:   []string{"prompt_identifier"},
			properties: []string{"prompt_identifier", "prompt_version"},
		},
		{
			tool:       invokePromptTool(),
			name:       "invoke_bedrock_prompt",
			required:   []string{"prompt_identifier"},
			properties: []string{"prompt_identifier", "prompt_variables", "prompt_version"},
		},
		{
			tool:       invokePromptStreamTool(),
			name:       "invoke_bedrock_prompt_stream",
			required:   []string{"prompt_identifier"},
			properties: []string{"prompt_identifier", "prompt_variables", "prompt_version"},
		},
		{
			tool:       batchInvokePromptTool(),
			name:       "batch_invoke_bedrock_prompt",
			required:   []string{"prompt_identifier", "variable_sets"},
			properties: []string{"prompt_identifier", "variable_sets", "prompt_version", "max_workers"},
		},
		{
			tool:       listPromptVersionsTool(),
			name:       "list_bedrock_prompt_versions",
			required:   []string{"prompt_identifier"},
			properties: []string{"prompt_identifier", "max_results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.name {
				t.Errorf("Expected tool name %q, got %q", tt.name, tt.tool.Name)
			}
			if tt.tool.Description == "" {
				t.Error("Expected a tool description")
			}
			for _, req := range tt.required {
				if !lo.Contains(tt.tool.InputSchema.Required, req) {
					t.Errorf("Expected %q to be required, got %v", req, tt.tool.InputSchema.Required)
				}
			}
			if len(tt.tool.InputSchema.Required) != len(tt.required) {
				t.Errorf("Expected %d required properties, got %v", len(tt.required), tt.tool.InputSchema.Required)
			}
			for _, prop := range tt.properties {
				if _, ok := tt.tool.InputSchema.Properties[prop]; !ok {
					t.Errorf("Expected property %q in schema", prop)
				}
			}
			if len(tt.tool.InputSchema.Properties) != len(tt.properties) {
				t.Errorf("Expected %d properties, got %d", len(tt.properties), len(tt.tool.InputSchema.Properties))
			}
		})
	}
}

func TestBatchWorkerBounds(t *testing.T) {
	tool := batchInvokePromptTool()
	schema, ok := tool.InputSchema.Properties["max_workers"].(map[string]any)
	if !ok {
		t.Fatalf("Expected a max_workers schema, got %v", tool.InputSchema.Properties["max_workers"])
	}
	if schema["minimum"] != float64(1) {
		t.Errorf("Expected minimum 1, got %v", schema["minimum"])
	}
	if schema["maximum"] != float64(10) {
		t.Errorf("Expected maximum 10, got %v", schema["maximum"])
	}
	if schema["default"] != float64(5) {
		t.Errorf("Expected default 5, got %v", schema["default"])
	}
}
