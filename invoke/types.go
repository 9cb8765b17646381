package invoke

import (
	"time"

	"github.com/promptkit/bedrockd/provider"
)

// Batch execution bounds. Worker counts outside [MinBatchWorkers,
// MaxBatchWorkers] are clamped; zero values take the defaults.
const (
	MinBatchWorkers       = 1
	MaxBatchWorkers       = 10
	DefaultBatchWorkers   = 5
	DefaultPerItemTimeout = 120 * time.Second
)

// Request describes one prompt invocation: a template, the variables to
// fill it with, and the model configuration resolved from the prompt
// variant.
type Request struct {
	// ModelID identifies the target model; the provider family is derived
	// from it.
	ModelID string

	// Template is the raw template text. Variables are substituted before
	// the request document is built.
	Template string

	// Variables fills the template's placeholders. May be nil.
	Variables map[string]string

	// Inference carries provider-neutral generation settings. May be nil.
	Inference provider.InferenceConfig

	// Extra fields merge into the request document without overwriting
	// keys the family mapping set.
	Extra map[string]any
}

// Result is the outcome of one successful invocation. Not mutated after
// construction.
type Result struct {
	// Completion is the extracted completion text. Empty when the response
	// carried no recognizable completion field.
	Completion string

	// Family is the provider family the request was shaped for.
	Family provider.Family

	// ModelID echoes the invoked model.
	ModelID string

	// FilledTemplate is the template after variable substitution, as sent.
	FilledTemplate string

	// RequestID correlates log lines and results for this invocation.
	RequestID string

	// Raw is the decoded response document. When the response body was not
	// a JSON document the bytes are preserved under the "raw" key.
	Raw map[string]any
}

// StreamResult is the outcome of one streaming invocation: the decoded text
// chunks in arrival order plus the assembled Result. Completion equals the
// concatenation of Chunks.
type StreamResult struct {
	Result

	// Chunks holds every non-empty text delta in arrival order.
	Chunks []string
}

// BatchRequest describes one template invoked once per variable set.
type BatchRequest struct {
	ModelID   string
	Template  string
	Inference provider.InferenceConfig
	Extra     map[string]any

	// VariableSets supplies one variable map per invocation. Outcome order
	// follows this slice regardless of completion order.
	VariableSets []map[string]string

	// MaxWorkers bounds concurrent invocations. Zero takes
	// DefaultBatchWorkers; other values are clamped to
	// [MinBatchWorkers, MaxBatchWorkers].
	MaxWorkers int

	// PerItemTimeout bounds each single invocation, not the whole batch.
	// Zero takes DefaultPerItemTimeout.
	PerItemTimeout time.Duration
}

// Failure kinds recorded on batch error records.
const (
	KindUnsupportedProvider = "unsupported_provider"
	KindInvocationError     = "invocation_error"
	KindTimeout             = "timeout"
)

// ErrorRecord describes one failed batch item with enough context for the
// caller to retry it selectively.
type ErrorRecord struct {
	// Index is the item's position in the submitted variable sets.
	Index int

	// Variables is the original variable set of the failed item.
	Variables map[string]string

	// Kind classifies the failure: KindUnsupportedProvider, KindTimeout,
	// or KindInvocationError.
	Kind string

	// Message is the failure description.
	Message string
}

// ItemOutcome is the terminal state of one batch item: exactly one of
// Result and Error is set.
type ItemOutcome struct {
	Result *Result
	Error  *ErrorRecord
}

// Succeeded reports whether the item completed without a recorded failure.
func (o ItemOutcome) Succeeded() bool {
	return o.Error == nil
}

// BatchOutcome summarizes a completed batch. Results[i] always corresponds
// to VariableSets[i], and Succeeded+Failed always equals Total.
type BatchOutcome struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []ItemOutcome
}
