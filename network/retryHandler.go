package network

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// attemptFunc runs one attempt. It returns retry true when another attempt should be made,
// either because err is transient or because the awaited state was not reached yet.
type attemptFunc func(ctx context.Context) (retry bool, err error)

type retryHandler struct {
	config  RetryConfig
	onRetry func()
}

func newRetryHandler(config RetryConfig, onRetry func()) (*retryHandler, error) {
	err := config.CheckValidity()
	if err != nil {
		return nil, err
	}
	if onRetry == nil {
		onRetry = func() {}
	}

	return &retryHandler{
		config:  config,
		onRetry: onRetry,
	}, nil
}

// run calls the attempt until it no longer asks for a retry or the attempts run out.
// exhausted is true when the budget ran out; err is then the last error seen, possibly nil.
func (handler *retryHandler) run(ctx context.Context, attempt attemptFunc) (attempts uint32, exhausted bool, err error) {
	policy := handler.config.newBackOff()

	for {
		attempts++
		retry, errAttempt := attempt(ctx)
		if !retry {
			return attempts, false, errAttempt
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			return attempts, true, errAttempt
		}

		log.Trace("retrying", "attempt", attempts, "delay", delay, "error", errAttempt)
		handler.onRetry()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempts, false, ctx.Err()
		case <-timer.C:
		}
	}
}
