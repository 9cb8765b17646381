package provider

import (
	"errors"
	"fmt"
)

// UnsupportedProviderError indicates a model identifier that resolved to no
// known family, or a family tag with no builder/parser pair. It is fatal to
// the single invocation that produced it.
type UnsupportedProviderError struct {
	ModelID string
	Family  Family
}

// Error implements the error interface.
func (e *UnsupportedProviderError) Error() string {
	if e.ModelID != "" {
		return fmt.Sprintf("unsupported model provider: %q", e.ModelID)
	}
	return fmt.Sprintf("unsupported model family: %q", e.Family)
}

// IsUnsupportedProvider checks if an error is an UnsupportedProviderError.
func IsUnsupportedProvider(err error) bool {
	var upErr *UnsupportedProviderError
	return errors.As(err, &upErr)
}
