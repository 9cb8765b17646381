package bedrock

import (
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/promptkit/bedrockd/invoke"
)

// eventStream adapts the Bedrock response event stream to
// invoke.ChunkStream. Payload chunks pass through in arrival order; other
// event kinds are skipped.
type eventStream struct {
	stream *bedrockruntime.InvokeModelWithResponseStreamEventStream
	chunk  []byte
}

func newEventStream(stream *bedrockruntime.InvokeModelWithResponseStreamEventStream) *eventStream {
	return &eventStream{stream: stream}
}

// Next advances to the next payload chunk. It returns false when the event
// channel closes, whether cleanly or on error; Err distinguishes the two.
func (s *eventStream) Next() bool {
	for event := range s.stream.Events() {
		if chunk, ok := event.(*types.ResponseStreamMemberChunk); ok {
			s.chunk = chunk.Value.Bytes
			return true
		}
	}
	return false
}

func (s *eventStream) Chunk() []byte {
	return s.chunk
}

func (s *eventStream) Err() error {
	return s.stream.Err()
}

func (s *eventStream) Close() error {
	return s.stream.Close()
}

var _ invoke.ChunkStream = (*eventStream)(nil)
