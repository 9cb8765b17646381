// Package provider maps provider-neutral invocation inputs onto the native
// request and response document shapes of the model families hosted on
// Amazon Bedrock.
//
// Every model family (Anthropic, Titan, Llama, Mistral, Cohere, AI21) has its
// own JSON body format for InvokeModel. This package pairs, per family, a
// request builder, a response parser, and a stream-chunk decoder, selected
// through a single Family tag resolved from the model identifier.
//
// # Core Concepts
//
//  1. Family: a closed tag derived from the model id with Resolve(). Adding a
//     provider means adding one Family constant plus its builder/parser pair;
//     the dispatch itself never changes shape.
//
//  2. InferenceConfig: generation parameters (maxTokens, temperature, topP,
//     stopSequences) in the provider-neutral shape the Bedrock prompt catalog
//     returns. Accessors coerce defensively and substitute documented defaults
//     when a value is absent or not coercible, so malformed optional settings
//     are never fatal.
//
//  3. BuildRequest / ParseResponse / DecodeChunk: pure functions, safe for
//     concurrent use. A response produced by a model of family F is only
//     meaningful to F's parser.
//
// Parse failures are deliberately non-fatal: a missing or malformed field
// yields an empty completion instead of an error, preserving partial progress
// in batch workloads. Callers that care can treat empty completions as
// suspect.
package provider
