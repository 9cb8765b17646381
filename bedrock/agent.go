package bedrock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent/types"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/promptkit/bedrockd/catalog"
)

// AgentAPI is the slice of the Bedrock agent API the client uses.
// *bedrockagent.Client implements it.
type AgentAPI interface {
	ListPrompts(ctx context.Context, params *bedrockagent.ListPromptsInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListPromptsOutput, error)
	GetPrompt(ctx context.Context, params *bedrockagent.GetPromptInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.GetPromptOutput, error)
	ListPromptVersions(ctx context.Context, params *bedrockagent.ListPromptVersionsInput, optFns ...func(*bedrockagent.Options)) (*bedrockagent.ListPromptVersionsOutput, error)
}

// AgentClient adapts the Bedrock agent API to the catalog.PromptStore
// capability. The typed API responses are flattened into the JSON-shaped
// documents the rest of the pipeline works with.
type AgentClient struct {
	api    AgentAPI
	retry  RetryPolicy
	logger zerolog.Logger
}

// NewAgentClient creates an AgentClient over the given API.
func NewAgentClient(api AgentAPI, retry RetryPolicy, logger zerolog.Logger) *AgentClient {
	return &AgentClient{
		api:    api,
		retry:  retry,
		logger: logger.With().Str("component", "bedrockAgent").Logger(),
	}
}

// ListPrompts implements catalog.PromptStore.
func (c *AgentClient) ListPrompts(ctx context.Context, maxResults int32, nextToken string) (*catalog.PromptPage, error) {
	in := &bedrockagent.ListPromptsInput{MaxResults: aws.Int32(maxResults)}
	if nextToken != "" {
		in.NextToken = aws.String(nextToken)
	}

	var out *bedrockagent.ListPromptsOutput
	err := retryThrottled(ctx, c.retry, func() error {
		var callErr error
		out, callErr = c.api.ListPrompts(ctx, in)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &catalog.PromptPage{
		Summaries: lo.Map(out.PromptSummaries, func(s types.PromptSummary, _ int) map[string]any {
			return summaryDoc(s)
		}),
		NextToken: aws.ToString(out.NextToken),
	}, nil
}

// GetPrompt implements catalog.PromptStore.
func (c *AgentClient) GetPrompt(ctx context.Context, promptID, version string) (map[string]any, error) {
	in := &bedrockagent.GetPromptInput{PromptIdentifier: aws.String(promptID)}
	if version != "" {
		in.PromptVersion = aws.String(version)
	}

	var out *bedrockagent.GetPromptOutput
	err := retryThrottled(ctx, c.retry, func() error {
		var callErr error
		out, callErr = c.api.GetPrompt(ctx, in)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return promptDoc(out), nil
}

// ListPromptVersions implements catalog.PromptStore.
func (c *AgentClient) ListPromptVersions(ctx context.Context, promptID string, maxResults int32) (*catalog.PromptPage, error) {
	in := &bedrockagent.ListPromptVersionsInput{
		PromptIdentifier: aws.String(promptID),
		MaxResults:       aws.Int32(maxResults),
	}

	var out *bedrockagent.ListPromptVersionsOutput
	err := retryThrottled(ctx, c.retry, func() error {
		var callErr error
		out, callErr = c.api.ListPromptVersions(ctx, in)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &catalog.PromptPage{
		Summaries: lo.Map(out.PromptSummaries, func(s types.PromptSummary, _ int) map[string]any {
			return summaryDoc(s)
		}),
		NextToken: aws.ToString(out.NextToken),
	}, nil
}

var _ catalog.PromptStore = (*AgentClient)(nil)

// summaryDoc flattens one prompt summary into the wire-shaped document.
func summaryDoc(s types.PromptSummary) map[string]any {
	doc := map[string]any{
		"id":      aws.ToString(s.Id),
		"name":    aws.ToString(s.Name),
		"arn":     aws.ToString(s.Arn),
		"version": aws.ToString(s.Version),
	}
	if s.Description != nil {
		doc["description"] = *s.Description
	}
	if s.CreatedAt != nil {
		doc["createdAt"] = s.CreatedAt.Format(time.RFC3339)
	}
	if s.UpdatedAt != nil {
		doc["updatedAt"] = s.UpdatedAt.Format(time.RFC3339)
	}
	return doc
}

// promptDoc flattens a full prompt into the wire-shaped document the
// variant resolver reads.
func promptDoc(out *bedrockagent.GetPromptOutput) map[string]any {
	doc := map[string]any{
		"id":      aws.ToString(out.Id),
		"name":    aws.ToString(out.Name),
		"arn":     aws.ToString(out.Arn),
		"version": aws.ToString(out.Version),
	}
	if out.Description != nil {
		doc["description"] = *out.Description
	}
	if out.DefaultVariant != nil {
		doc["defaultVariant"] = *out.DefaultVariant
	}
	if out.CreatedAt != nil {
		doc["createdAt"] = out.CreatedAt.Format(time.RFC3339)
	}
	if out.UpdatedAt != nil {
		doc["updatedAt"] = out.UpdatedAt.Format(time.RFC3339)
	}
	if len(out.Variants) > 0 {
		doc["variants"] = lo.Map(out.Variants, func(v types.PromptVariant, _ int) any {
			return variantDoc(v)
		})
	}
	return doc
}

// variantDoc flattens one prompt variant, unwrapping the union-typed
// template and inference configurations into their JSON shapes.
func variantDoc(v types.PromptVariant) map[string]any {
	doc := map[string]any{"name": aws.ToString(v.Name)}

	if v.ModelId != nil {
		doc["modelId"] = *v.ModelId
	}
	if v.TemplateType != "" {
		doc["templateType"] = string(v.TemplateType)
	}

	if tc, ok := v.TemplateConfiguration.(*types.PromptTemplateConfigurationMemberText); ok {
		text := map[string]any{"text": aws.ToString(tc.Value.Text)}
		if len(tc.Value.InputVariables) > 0 {
			text["inputVariables"] = lo.Map(tc.Value.InputVariables, func(iv types.PromptInputVariable, _ int) any {
				return map[string]any{"name": aws.ToString(iv.Name)}
			})
		}
		doc["templateConfiguration"] = map[string]any{"text": text}
	}

	if ic, ok := v.InferenceConfiguration.(*types.PromptInferenceConfigurationMemberText); ok {
		cfg := map[string]any{}
		if ic.Value.MaxTokens != nil {
			cfg["maxTokens"] = int(*ic.Value.MaxTokens)
		}
		if ic.Value.Temperature != nil {
			cfg["temperature"] = float64(*ic.Value.Temperature)
		}
		if ic.Value.TopP != nil {
			cfg["topP"] = float64(*ic.Value.TopP)
		}
		if len(ic.Value.StopSequences) > 0 {
			cfg["stopSequences"] = ic.Value.StopSequences
		}
		doc["inferenceConfiguration"] = map[string]any{"text": cfg}
	}

	if v.AdditionalModelRequestFields != nil {
		if raw, err := v.AdditionalModelRequestFields.MarshalSmithyDocument(); err == nil {
			var extra map[string]any
			if json.Unmarshal(raw, &extra) == nil && len(extra) > 0 {
				doc["additionalModelRequestFields"] = extra
			}
		}
	}

	return doc
}
