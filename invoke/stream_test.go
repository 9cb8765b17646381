package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/promptkit/bedrockd/provider"
)

type fakeStream struct {
	chunks  [][]byte
	pos     int
	failErr error
	closed  bool
}

func (s *fakeStream) Next() bool {
	if s.pos < len(s.chunks) {
		s.pos++
		return true
	}
	return false
}

func (s *fakeStream) Chunk() []byte { return s.chunks[s.pos-1] }
func (s *fakeStream) Err() error    { return s.failErr }
func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeStreamer struct {
	stream *fakeStream
	err    error
	calls  int
}

func (f *fakeStreamer) InvokeModelStream(ctx context.Context, modelID string, body []byte) (ChunkStream, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stream, nil
}

func titanChunks(texts ...string) [][]byte {
	chunks := make([][]byte, len(texts))
	for i, text := range texts {
		chunks[i] = []byte(fmt.Sprintf(`{"outputText":%q}`, text))
	}
	return chunks
}

func TestInvokeStreamConcatenation(t *testing.T) {
	stream := &fakeStream{chunks: titanChunks("Once", " upon", " a time")}
	streamer := &fakeStreamer{stream: stream}
	client := newTestClient(nil, streamer)

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "tell a story",
	})
	if err != nil {
		t.Fatalf("InvokeStream failed: %v", err)
	}

	if len(res.Chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(res.Chunks))
	}
	if res.Completion != "Once upon a time" {
		t.Errorf("Expected assembled completion, got %q", res.Completion)
	}
	if joined := strings.Join(res.Chunks, ""); joined != res.Completion {
		t.Errorf("Expected chunk concatenation %q to equal completion %q", joined, res.Completion)
	}
	if !stream.closed {
		t.Error("Expected stream to be closed")
	}
}

func TestInvokeStreamManyChunks(t *testing.T) {
	texts := make([]string, 1000)
	for i := range texts {
		texts[i] = fmt.Sprintf("w%d ", i)
	}
	stream := &fakeStream{chunks: titanChunks(texts...)}
	client := newTestClient(nil, &fakeStreamer{stream: stream})

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if err != nil {
		t.Fatalf("InvokeStream failed: %v", err)
	}
	if len(res.Chunks) != 1000 {
		t.Errorf("Expected 1000 chunks, got %d", len(res.Chunks))
	}
	if want := strings.Join(texts, ""); res.Completion != want {
		t.Errorf("Expected completion of %d chars, got %d", len(want), len(res.Completion))
	}
}

func TestInvokeStreamZeroChunks(t *testing.T) {
	stream := &fakeStream{}
	client := newTestClient(nil, &fakeStreamer{stream: stream})

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if err != nil {
		t.Fatalf("InvokeStream failed: %v", err)
	}
	if res.Completion != "" {
		t.Errorf("Expected empty completion, got %q", res.Completion)
	}
	if len(res.Chunks) != 0 {
		t.Errorf("Expected no chunks, got %v", res.Chunks)
	}
	if !stream.closed {
		t.Error("Expected stream to be closed")
	}
}

func TestInvokeStreamSkipsNonTextEvents(t *testing.T) {
	stream := &fakeStream{chunks: [][]byte{
		[]byte(`{"type":"message_start","message":{"role":"assistant"}}`),
		[]byte(`{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hel"}}`),
		[]byte(`{"type":"content_block_delta","delta":{"type":"text_delta","text":"lo"}}`),
		[]byte(`{"type":"message_stop"}`),
	}}
	client := newTestClient(nil, &fakeStreamer{stream: stream})

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "anthropic.claude-3-haiku-20240307-v1:0",
		Template: "hi",
	})
	if err != nil {
		t.Fatalf("InvokeStream failed: %v", err)
	}
	if len(res.Chunks) != 2 {
		t.Errorf("Expected 2 text chunks, got %d: %v", len(res.Chunks), res.Chunks)
	}
	if res.Completion != "Hello" {
		t.Errorf("Expected completion Hello, got %q", res.Completion)
	}
}

func TestInvokeStreamSkipsUndecodableChunk(t *testing.T) {
	stream := &fakeStream{chunks: [][]byte{
		[]byte(`{"outputText":"a"}`),
		[]byte(`%% not json %%`),
		[]byte(`{"outputText":"b"}`),
	}}
	client := newTestClient(nil, &fakeStreamer{stream: stream})

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if err != nil {
		t.Fatalf("InvokeStream failed: %v", err)
	}
	if res.Completion != "ab" {
		t.Errorf("Expected undecodable chunk skipped, got %q", res.Completion)
	}
}

func TestInvokeStreamMidstreamFailure(t *testing.T) {
	stream := &fakeStream{
		chunks:  titanChunks("partial", " output"),
		failErr: errors.New("connection reset"),
	}
	client := newTestClient(nil, &fakeStreamer{stream: stream})

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if err == nil {
		t.Fatal("Expected mid-stream failure to surface")
	}
	if !IsInvocationError(err) {
		t.Errorf("Expected InvocationError, got %T: %v", err, err)
	}
	if res == nil {
		t.Fatal("Expected partial result alongside the error")
	}
	if res.Completion != "partial output" {
		t.Errorf("Expected partial chunks preserved, got %q", res.Completion)
	}
	if !stream.closed {
		t.Error("Expected stream to be closed after failure")
	}
}

func TestInvokeStreamSetupFailure(t *testing.T) {
	streamer := &fakeStreamer{err: errors.New("no stream for you")}
	client := newTestClient(nil, streamer)

	res, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if err == nil {
		t.Fatal("Expected setup failure to surface")
	}
	if res != nil {
		t.Errorf("Expected nil result, got %+v", res)
	}
	if !IsInvocationError(err) {
		t.Errorf("Expected InvocationError, got %T: %v", err, err)
	}
}

func TestInvokeStreamUnknownModel(t *testing.T) {
	streamer := &fakeStreamer{stream: &fakeStream{}}
	client := newTestClient(nil, streamer)

	_, err := client.InvokeStream(context.Background(), Request{ModelID: "mystery-model-v1", Template: "go"})
	if !provider.IsUnsupportedProvider(err) {
		t.Errorf("Expected UnsupportedProviderError, got %T: %v", err, err)
	}
	if streamer.calls != 0 {
		t.Errorf("Expected no capability call, got %d", streamer.calls)
	}
}

func TestInvokeStreamWithoutStreamer(t *testing.T) {
	client := newTestClient(&fakeInvoker{respond: staticResponse(`{}`)}, nil)

	_, err := client.InvokeStream(context.Background(), Request{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "go",
	})
	if !IsInvocationError(err) {
		t.Errorf("Expected InvocationError without streaming capability, got %T: %v", err, err)
	}
}
