package invoke

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/promptkit/bedrockd/prompt"
	"github.com/promptkit/bedrockd/provider"
)

// Client executes managed-prompt invocations against the model-invocation
// capabilities. It is safe for concurrent use.
type Client struct {
	invoker  ModelInvoker
	streamer ModelStreamer
	logger   zerolog.Logger
}

// NewClient creates a Client over the given capabilities. streamer may be
// nil when streaming is not used; InvokeStream then fails with an
// InvocationError instead of panicking.
func NewClient(invoker ModelInvoker, streamer ModelStreamer, logger zerolog.Logger) *Client {
	return &Client{
		invoker:  invoker,
		streamer: streamer,
		logger:   logger.With().Str("component", "invoke").Logger(),
	}
}

// Invoke runs the full invocation pipeline: resolve the provider family,
// fill the template, build and serialize the request document, call the
// capability, and parse the completion out of the response.
//
// A response that cannot be parsed is not an error: the Result carries an
// empty Completion and the raw payload, and the caller decides whether that
// is acceptable. Transport failures come back as *InvocationError; an
// unresolvable model id as *provider.UnsupportedProviderError.
func (c *Client) Invoke(ctx context.Context, req Request) (*Result, error) {
	family := provider.Resolve(req.ModelID)
	if !family.Supported() {
		return nil, &provider.UnsupportedProviderError{ModelID: req.ModelID, Family: family}
	}

	filled := prompt.Fill(req.Template, req.Variables)

	doc, err := provider.BuildRequest(family, filled, req.Inference, req.Extra)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, &InvocationError{Op: "invoke", ModelID: req.ModelID, Cause: err}
	}

	requestID := uuid.NewString()
	logger := c.logger.With().
		Str("request_id", requestID).
		Str("model_id", req.ModelID).
		Str("family", family.String()).
		Logger()
	logger.Debug().Int("request_bytes", len(body)).Msg("invoking model")

	respBody, err := c.invoker.InvokeModel(ctx, req.ModelID, body)
	if err != nil {
		logger.Error().Err(err).Msg("model invocation failed")
		return nil, &InvocationError{Op: "invoke", ModelID: req.ModelID, Cause: err}
	}

	result := &Result{
		Family:         family,
		ModelID:        req.ModelID,
		FilledTemplate: filled,
		RequestID:      requestID,
	}

	var respDoc map[string]any
	if err := json.Unmarshal(respBody, &respDoc); err != nil {
		logger.Warn().Err(err).Msg("response body is not a JSON document")
		result.Raw = map[string]any{"raw": string(respBody)}
		return result, nil
	}

	result.Raw = respDoc
	result.Completion = provider.ParseResponse(family, respDoc)
	if result.Completion == "" {
		logger.Warn().Msg("response carried no completion text")
	} else {
		logger.Debug().Int("completion_chars", len(result.Completion)).Msg("invocation complete")
	}

	return result, nil
}
