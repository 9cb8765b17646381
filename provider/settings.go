package provider

import (
	"github.com/spf13/cast"
)

// Defaults substituted when an inference setting is absent or not coercible
// to its target type. These match the values Bedrock applies for text
// generation when a prompt variant omits them.
const (
	DefaultMaxTokens   = 2000
	DefaultTemperature = 1.0
	DefaultTopP        = 0.999
)

// Keys of the provider-neutral inference configuration, as returned by the
// Bedrock prompt catalog (inferenceConfiguration.text).
const (
	keyMaxTokens     = "maxTokens"
	keyTemperature   = "temperature"
	keyTopP          = "topP"
	keyStopSequences = "stopSequences"
)

// InferenceConfig carries generation parameters in the provider-neutral shape
// the prompt catalog returns. Values arrive untyped (JSON numbers, strings,
// occasionally nonsense); the accessors coerce defensively and fall back to
// the documented default instead of propagating a type error, so a malformed
// optional setting never fails an invocation.
type InferenceConfig map[string]any

// MaxTokens returns the maximum generation length, or DefaultMaxTokens when
// absent or not coercible to an integer.
func (c InferenceConfig) MaxTokens() int {
	v, ok := c[keyMaxTokens]
	if !ok || v == nil {
		return DefaultMaxTokens
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return DefaultMaxTokens
	}
	return n
}

// Temperature returns the sampling temperature, or DefaultTemperature when
// absent or not coercible to a float.
func (c InferenceConfig) Temperature() float64 {
	v, ok := c[keyTemperature]
	if !ok || v == nil {
		return DefaultTemperature
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return DefaultTemperature
	}
	return f
}

// TopP returns the nucleus sampling bound, or DefaultTopP when absent or not
// coercible to a float.
func (c InferenceConfig) TopP() float64 {
	v, ok := c[keyTopP]
	if !ok || v == nil {
		return DefaultTopP
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return DefaultTopP
	}
	return f
}

// StopSequences returns the configured stop sequences, or nil when absent or
// not coercible to a string slice.
func (c InferenceConfig) StopSequences() []string {
	v, ok := c[keyStopSequences]
	if !ok || v == nil {
		return nil
	}
	seqs, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	return seqs
}

// stopSequencesOrEmpty returns the stop sequences as a non-nil slice, for
// family formats that always carry the field (it must serialize as [] rather
// than null).
func stopSequencesOrEmpty(c InferenceConfig) []string {
	if seqs := c.StopSequences(); seqs != nil {
		return seqs
	}
	return []string{}
}
