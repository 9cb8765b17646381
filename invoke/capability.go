package invoke

import "context"

// ModelInvoker is the synchronous model-invocation capability. Given a
// serialized request document it returns the raw response document bytes.
// Implementations own transport concerns (signing, retries, wire protocol);
// the engine never looks inside them.
type ModelInvoker interface {
	// InvokeModel sends body to the model identified by modelID and
	// returns the complete response body.
	InvokeModel(ctx context.Context, modelID string, body []byte) ([]byte, error)
}

// ModelStreamer is the streaming model-invocation capability: the same
// request, answered as an ordered sequence of partial response documents.
type ModelStreamer interface {
	// InvokeModelStream sends body to the model identified by modelID and
	// returns the chunk stream. The caller must Close the stream.
	InvokeModelStream(ctx context.Context, modelID string, body []byte) (ChunkStream, error)
}

// ChunkStream is an ordered sequence of raw response chunks.
type ChunkStream interface {
	// Next advances to the next chunk. Returns false when the stream is
	// complete or an error occurred.
	Next() bool

	// Chunk returns the current chunk bytes. Only valid after Next()
	// returns true.
	Chunk() []byte

	// Err returns the error that ended the stream, or nil on clean end.
	Err() error

	// Close releases stream resources. Safe to call more than once.
	Close() error
}
