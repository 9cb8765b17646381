package invoke

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// InvokeBatch invokes one template once per variable set, concurrently,
// with per-item isolation. It never returns an error: each failed item is
// recorded in its slot of the outcome and the rest of the batch proceeds.
//
// Concurrency is bounded by MaxWorkers. Each item runs under its own
// timeout context, passed into the capability call, so an expired item's
// network call is cancelled rather than abandoned. Results[i] corresponds
// to VariableSets[i] regardless of completion order.
func (c *Client) InvokeBatch(ctx context.Context, req BatchRequest) *BatchOutcome {
	total := len(req.VariableSets)
	outcome := &BatchOutcome{
		Total:   total,
		Results: make([]ItemOutcome, total),
	}
	if total == 0 {
		return outcome
	}

	workers := clampWorkers(req.MaxWorkers)
	timeout := req.PerItemTimeout
	if timeout <= 0 {
		timeout = DefaultPerItemTimeout
	}

	logger := c.logger.With().
		Str("model_id", req.ModelID).
		Int("items", total).
		Int("workers", workers).
		Logger()
	logger.Info().Dur("per_item_timeout", timeout).Msg("starting batch invocation")
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(workers)

	for i, vars := range req.VariableSets {
		g.Go(func() error {
			itemCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			res, err := c.Invoke(itemCtx, Request{
				ModelID:   req.ModelID,
				Template:  req.Template,
				Variables: vars,
				Inference: req.Inference,
				Extra:     req.Extra,
			})
			if err != nil {
				// Each goroutine writes only its own slot.
				outcome.Results[i] = ItemOutcome{Error: &ErrorRecord{
					Index:     i,
					Variables: vars,
					Kind:      FailureKind(err),
					Message:   err.Error(),
				}}
				return nil
			}
			outcome.Results[i] = ItemOutcome{Result: res}
			return nil
		})
	}

	// Workers never return errors; Wait is purely the join barrier.
	_ = g.Wait()

	for i := range outcome.Results {
		if outcome.Results[i].Succeeded() {
			outcome.Succeeded++
		} else {
			outcome.Failed++
		}
	}

	logger.Info().
		Int("succeeded", outcome.Succeeded).
		Int("failed", outcome.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("batch invocation complete")
	return outcome
}

// clampWorkers applies the batch worker bounds: zero means unset and takes
// the default, anything else lands inside [MinBatchWorkers, MaxBatchWorkers].
func clampWorkers(n int) int {
	switch {
	case n == 0:
		return DefaultBatchWorkers
	case n < MinBatchWorkers:
		return MinBatchWorkers
	case n > MaxBatchWorkers:
		return MaxBatchWorkers
	default:
		return n
	}
}
