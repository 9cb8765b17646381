package invoke

import (
	"context"
	"errors"

	"github.com/promptkit/bedrockd/provider"
)

// InvocationError wraps a transport or provider failure for one invocation.
type InvocationError struct {
	// Op is the operation that failed: "invoke" or "invoke_stream".
	Op string

	// ModelID is the model the invocation targeted.
	ModelID string

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *InvocationError) Error() string {
	return e.Op + " " + e.ModelID + ": " + e.Cause.Error()
}

// Unwrap returns the underlying failure.
func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// IsInvocationError checks if an error is an InvocationError.
func IsInvocationError(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}

// IsTimeout checks if an error stems from an expired deadline, including a
// deadline wrapped inside an InvocationError.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// FailureKind classifies an invocation error into the kind strings recorded
// on batch error records.
func FailureKind(err error) string {
	switch {
	case IsTimeout(err):
		return KindTimeout
	case provider.IsUnsupportedProvider(err):
		return KindUnsupportedProvider
	default:
		return KindInvocationError
	}
}
