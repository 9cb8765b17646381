// Package invoke executes managed-prompt invocations against an abstract
// model-invocation capability, one at a time, streamed, or as a concurrent
// batch.
//
// # Core Concepts
//
//  1. Capabilities: ModelInvoker and ModelStreamer are the transport
//     boundary. Given a serialized request document they return a response
//     document (or an ordered ChunkStream of partial documents). The engine
//     never sees transport details.
//
//  2. Pipeline: Invoke resolves the provider family from the model id,
//     fills the template, builds the family-shaped request document, calls
//     the capability, and parses the completion from the response. The
//     streaming variant decodes each chunk with the family's chunk shape.
//
//  3. Batch: InvokeBatch runs one template across many variable sets under
//     a bounded worker pool. Failures are isolated per item; the outcome
//     always has one slot per input, in input order, with error records
//     that carry enough context for selective retry.
//
//  4. Errors: UnsupportedProviderError for model ids that resolve to no
//     family, InvocationError for transport failures. A response the family
//     parser cannot read is not an error; it yields an empty completion
//     with the raw payload preserved.
//
// All entry points are safe for concurrent use; builders, parsers, and the
// template filler are pure functions.
package invoke
