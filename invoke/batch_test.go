package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// echoInvoker answers every request with a Titan-shaped response that echoes
// the request's inputText, so tests can match outcomes back to inputs.
func echoInvoker() *fakeInvoker {
	return &fakeInvoker{respond: func(_ context.Context, _ string, body []byte) ([]byte, error) {
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, err
		}
		resp := map[string]any{
			"results": []any{map[string]any{"outputText": "echo: " + doc["inputText"].(string)}},
		}
		return json.Marshal(resp)
	}}
}

func variableSets(n int) []map[string]string {
	sets := make([]map[string]string, n)
	for i := range sets {
		sets[i] = map[string]string{"id": fmt.Sprintf("%d", i)}
	}
	return sets
}

func TestInvokeBatchOrderAndCounts(t *testing.T) {
	client := newTestClient(echoInvoker(), nil)

	outcome := client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:      "amazon.titan-text-express-v1",
		Template:     "Item {id}",
		VariableSets: variableSets(7),
		MaxWorkers:   3,
	})

	if outcome.Total != 7 {
		t.Errorf("Expected total 7, got %d", outcome.Total)
	}
	if outcome.Succeeded != 7 || outcome.Failed != 0 {
		t.Errorf("Expected 7 succeeded / 0 failed, got %d / %d", outcome.Succeeded, outcome.Failed)
	}
	if len(outcome.Results) != 7 {
		t.Fatalf("Expected 7 results, got %d", len(outcome.Results))
	}
	for i, item := range outcome.Results {
		if !item.Succeeded() {
			t.Fatalf("Expected item %d to succeed, got %+v", i, item.Error)
		}
		want := fmt.Sprintf("echo: Item %d", i)
		if item.Result.Completion != want {
			t.Errorf("Expected result %d to be %q, got %q", i, want, item.Result.Completion)
		}
	}
}

func TestInvokeBatchEmpty(t *testing.T) {
	invoker := echoInvoker()
	client := newTestClient(invoker, nil)

	outcome := client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:  "amazon.titan-text-express-v1",
		Template: "Item {id}",
	})

	if outcome.Total != 0 || outcome.Succeeded != 0 || outcome.Failed != 0 {
		t.Errorf("Expected empty outcome, got %+v", outcome)
	}
	if len(outcome.Results) != 0 {
		t.Errorf("Expected no results, got %d", len(outcome.Results))
	}
	if invoker.calls != 0 {
		t.Errorf("Expected no capability calls, got %d", invoker.calls)
	}
}

func TestInvokeBatchSizes(t *testing.T) {
	for _, n := range []int{1, 10, 100} {
		for _, workers := range []int{1, 10} {
			t.Run(fmt.Sprintf("n=%d workers=%d", n, workers), func(t *testing.T) {
				client := newTestClient(echoInvoker(), nil)
				outcome := client.InvokeBatch(context.Background(), BatchRequest{
					ModelID:      "amazon.titan-text-express-v1",
					Template:     "Item {id}",
					VariableSets: variableSets(n),
					MaxWorkers:   workers,
				})
				if len(outcome.Results) != n {
					t.Errorf("Expected %d results, got %d", n, len(outcome.Results))
				}
				if outcome.Succeeded+outcome.Failed != outcome.Total {
					t.Errorf("Expected counts to add up, got %d + %d != %d",
						outcome.Succeeded, outcome.Failed, outcome.Total)
				}
				if outcome.Total != n {
					t.Errorf("Expected total %d, got %d", n, outcome.Total)
				}
			})
		}
	}
}

func TestInvokeBatchConcurrencyBound(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	invoker := &fakeInvoker{respond: func(context.Context, string, []byte) ([]byte, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return []byte(`{"results":[{"outputText":"ok"}]}`), nil
	}}
	client := newTestClient(invoker, nil)

	client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:      "amazon.titan-text-express-v1",
		Template:     "Item {id}",
		VariableSets: variableSets(30),
		MaxWorkers:   4,
	})

	if maxInFlight > 4 {
		t.Errorf("Expected at most 4 concurrent invocations, observed %d", maxInFlight)
	}
	if maxInFlight == 0 {
		t.Error("Expected at least one invocation")
	}
}

func TestClampWorkers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultBatchWorkers},
		{-2, MinBatchWorkers},
		{1, 1},
		{7, 7},
		{10, 10},
		{11, MaxBatchWorkers},
		{100, MaxBatchWorkers},
	}
	for _, tt := range tests {
		if got := clampWorkers(tt.in); got != tt.want {
			t.Errorf("clampWorkers(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInvokeBatchSlowItemTimesOut(t *testing.T) {
	invoker := &fakeInvoker{respond: func(ctx context.Context, _ string, body []byte) ([]byte, error) {
		if strings.Contains(string(body), "slow") {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []byte(`{"results":[{"outputText":"ok"}]}`), nil
	}}
	client := newTestClient(invoker, nil)

	sets := variableSets(5)
	sets[2] = map[string]string{"id": "slow"}

	start := time.Now()
	outcome := client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:        "amazon.titan-text-express-v1",
		Template:       "Item {id}",
		VariableSets:   sets,
		MaxWorkers:     5,
		PerItemTimeout: 30 * time.Millisecond,
	})
	elapsed := time.Since(start)

	if outcome.Succeeded != 4 || outcome.Failed != 1 {
		t.Fatalf("Expected 4 succeeded / 1 failed, got %d / %d", outcome.Succeeded, outcome.Failed)
	}

	rec := outcome.Results[2].Error
	if rec == nil {
		t.Fatal("Expected error record for the slow item")
	}
	if rec.Kind != KindTimeout {
		t.Errorf("Expected kind %q, got %q", KindTimeout, rec.Kind)
	}
	if rec.Index != 2 {
		t.Errorf("Expected index 2 on error record, got %d", rec.Index)
	}
	if rec.Variables["id"] != "slow" {
		t.Errorf("Expected original variables on error record, got %v", rec.Variables)
	}
	if rec.Message == "" {
		t.Error("Expected non-empty error message")
	}

	// The slow item must cost one timeout, not stall the batch.
	if elapsed > time.Second {
		t.Errorf("Expected batch to finish promptly, took %v", elapsed)
	}
}

func TestInvokeBatchUnknownModel(t *testing.T) {
	invoker := echoInvoker()
	client := newTestClient(invoker, nil)

	outcome := client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:      "mystery-model-v1",
		Template:     "Item {id}",
		VariableSets: variableSets(3),
	})

	if outcome.Failed != 3 || outcome.Succeeded != 0 {
		t.Fatalf("Expected all items to fail, got %d / %d", outcome.Succeeded, outcome.Failed)
	}
	for i, item := range outcome.Results {
		if item.Error == nil {
			t.Fatalf("Expected error record for item %d", i)
		}
		if item.Error.Kind != KindUnsupportedProvider {
			t.Errorf("Expected kind %q for item %d, got %q", KindUnsupportedProvider, i, item.Error.Kind)
		}
		if item.Error.Index != i {
			t.Errorf("Expected index %d on record, got %d", i, item.Error.Index)
		}
	}
	if invoker.calls != 0 {
		t.Errorf("Expected no capability calls for unknown model, got %d", invoker.calls)
	}
}

func TestInvokeBatchIsolatesTransportFailures(t *testing.T) {
	invoker := &fakeInvoker{respond: func(_ context.Context, _ string, body []byte) ([]byte, error) {
		if strings.Contains(string(body), "Item 1") {
			return nil, fmt.Errorf("boom")
		}
		return []byte(`{"results":[{"outputText":"ok"}]}`), nil
	}}
	client := newTestClient(invoker, nil)

	outcome := client.InvokeBatch(context.Background(), BatchRequest{
		ModelID:      "amazon.titan-text-express-v1",
		Template:     "Item {id}",
		VariableSets: variableSets(3),
	})

	if outcome.Succeeded != 2 || outcome.Failed != 1 {
		t.Fatalf("Expected 2 succeeded / 1 failed, got %d / %d", outcome.Succeeded, outcome.Failed)
	}
	rec := outcome.Results[1].Error
	if rec == nil {
		t.Fatal("Expected error record on item 1")
	}
	if rec.Kind != KindInvocationError {
		t.Errorf("Expected kind %q, got %q", KindInvocationError, rec.Kind)
	}
	if !strings.Contains(rec.Message, "boom") {
		t.Errorf("Expected cause in message, got %q", rec.Message)
	}
}
