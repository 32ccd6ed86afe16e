package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/voicenotes/scribe/internal/errors"
	"github.com/voicenotes/scribe/internal/metrics"
)

type stageOutcome[T any] struct {
	value T
	err   error
}

// runStage executes fn in its own goroutine under a hard deadline. A stage
// that panics or runs past the deadline yields a stage-no-result error with
// the given code; the serving goroutine is never taken down with it. Provider
// errors pass through unchanged. No retries at this level.
func runStage[T any](ctx context.Context, stage string, timeout time.Duration, noResultCode string, fn func(context.Context) (T, error)) (T, error) {
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	ch := make(chan stageOutcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- stageOutcome[T]{err: errors.NewStageNoResultError(
					fmt.Sprintf("%s stage crashed: %v", stage, r), noResultCode, nil)}
			}
		}()
		v, err := fn(stageCtx)
		ch <- stageOutcome[T]{value: v, err: err}
	}()

	var out stageOutcome[T]
	select {
	case out = <-ch:
	case <-stageCtx.Done():
		// The stage goroutine may still be running; its buffered send will
		// not block, and the cancelled context tells the provider to stop.
		out = stageOutcome[T]{err: errors.NewStageNoResultError(
			stage+" stage produced no result before the deadline", noResultCode, stageCtx.Err())}
	}

	attrs := metric.WithAttributes(attribute.String("stage", stage))
	metrics.StageDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if out.err != nil && errors.AsAppError(out.err).Type == errors.ErrorTypeStageNoResult {
		metrics.StageFailuresTotal.Add(ctx, 1, attrs)
	}
	return out.value, out.err
}
