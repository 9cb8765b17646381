// Package bedrock implements the engine and catalog capabilities on the AWS
// Bedrock APIs: model invocation (synchronous and streaming) on the runtime
// service, prompt metadata reads on the agent service. Throttling errors are
// retried with exponential backoff; all other failures surface unchanged.
package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog"

	"github.com/promptkit/bedrockd/invoke"
)

const contentTypeJSON = "application/json"

// RuntimeAPI is the slice of the Bedrock runtime API the client uses.
// *bedrockruntime.Client implements it.
type RuntimeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
	InvokeModelWithResponseStream(ctx context.Context, params *bedrockruntime.InvokeModelWithResponseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelWithResponseStreamOutput, error)
}

// RuntimeClient adapts the Bedrock runtime API to the invocation
// capabilities.
type RuntimeClient struct {
	api    RuntimeAPI
	retry  RetryPolicy
	logger zerolog.Logger
}

// NewRuntimeClient creates a RuntimeClient over the given API.
func NewRuntimeClient(api RuntimeAPI, retry RetryPolicy, logger zerolog.Logger) *RuntimeClient {
	return &RuntimeClient{
		api:    api,
		retry:  retry,
		logger: logger.With().Str("component", "bedrockRuntime").Logger(),
	}
}

// InvokeModel implements invoke.ModelInvoker.
func (c *RuntimeClient) InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	var out *bedrockruntime.InvokeModelOutput
	err := retryThrottled(ctx, c.retry, func() error {
		var callErr error
		out, callErr = c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(modelID),
			Body:        body,
			ContentType: aws.String(contentTypeJSON),
			Accept:      aws.String(contentTypeJSON),
		})
		if callErr != nil && isThrottle(callErr) {
			c.logger.Warn().Str("model_id", modelID).Msg("invocation throttled, backing off")
		}
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// InvokeModelStream implements invoke.ModelStreamer. Only the call that
// opens the stream is retried on throttling; once chunks are flowing a
// failure belongs to the consumer.
func (c *RuntimeClient) InvokeModelStream(ctx context.Context, modelID string, body []byte) (invoke.ChunkStream, error) {
	var out *bedrockruntime.InvokeModelWithResponseStreamOutput
	err := retryThrottled(ctx, c.retry, func() error {
		var callErr error
		out, callErr = c.api.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
			ModelId:     aws.String(modelID),
			Body:        body,
			ContentType: aws.String(contentTypeJSON),
			Accept:      aws.String(contentTypeJSON),
		})
		if callErr != nil && isThrottle(callErr) {
			c.logger.Warn().Str("model_id", modelID).Msg("stream invocation throttled, backing off")
		}
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return newEventStream(out.GetStream()), nil
}

var _ invoke.ModelInvoker = (*RuntimeClient)(nil)
var _ invoke.ModelStreamer = (*RuntimeClient)(nil)
