package helpers

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy retries an operation Attempts times in total, sleeping
// BaseDelay * 2^attempt between consecutive attempts.
type RetryPolicy struct {
	Attempts  uint
	BaseDelay time.Duration
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.BaseDelay << p.Attempts
	return b
}

// Retry runs op until it succeeds or the policy is exhausted, returning the last error.
// Errors wrapped with backoff.Permanent stop the loop immediately.
func Retry[T any](ctx context.Context, p RetryPolicy, op func() (T, error), onRetry func(err error, next time.Duration)) (T, error) {
	if p.Attempts == 0 {
		p = DefaultRetryPolicy
	}
	opts := []backoff.RetryOption{
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(p.Attempts),
	}
	if onRetry != nil {
		opts = append(opts, backoff.WithNotify(onRetry))
	}
	return backoff.Retry(ctx, op, opts...)
}
