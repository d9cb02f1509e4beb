// Package retry repeats infrastructure calls made while the service starts.
// User actions are never retried.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
)

const (
	defaultDelay        = 100 * time.Millisecond
	maxExponentialDelay = 10 * time.Second
)

// Backoff returns the wait before the attempt following the given one.
type Backoff func(attempt int) time.Duration

// Policy bounds a retried call. The zero value runs the call once.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff
	// MaxDelay caps a single wait when positive.
	MaxDelay time.Duration
	// Retryable reports whether err is worth another attempt. Nil retries
	// everything except errors wrapped by Permanent.
	Retryable func(error) bool
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.Backoff == nil {
		p.Backoff = ExponentialBackoff(defaultDelay)
	}
	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}
	return p
}

func (p Policy) wait(attempt int) time.Duration {
	d := p.Backoff(attempt)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return max(d, 0)
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }

func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do and DoWithResult return
// the wrapped error as is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

// ExponentialBackoff doubles delay each attempt, jittered between delay
// and the doubled value and capped at maxExponentialDelay.
func ExponentialBackoff(delay time.Duration) Backoff {
	if delay <= 0 {
		return ConstantBackoff(0)
	}
	b := &backoff.Backoff{
		Min:    delay,
		Max:    maxExponentialDelay,
		Factor: 2,
		Jitter: true,
	}
	return func(attempt int) time.Duration {
		return b.ForAttempt(float64(attempt))
	}
}

// LinearBackoff waits delay times the attempt number.
func LinearBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return delay * time.Duration(attempt)
	}
}

func ConstantBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := DoWithResult(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult calls fn until it succeeds, the policy gives up or ctx is
// done. On give up the last error is returned.
func DoWithResult[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	p = p.withDefaults()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		var perm permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		if attempt >= p.MaxAttempts || !p.Retryable(err) {
			return zero, err
		}

		d := p.wait(attempt)
		if timer == nil {
			timer = time.NewTimer(d)
		} else {
			timer.Reset(d)
		}
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}
