// Package retry implements the bounded backoff used for quota-limited
// store calls: base 1s, doubling per attempt, plus a fractional random
// addend so concurrent retries spread out.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// DefaultAttempts bounds the retry budget for a single operation.
const DefaultAttempts = 3

const baseDelay = time.Second

// Retrier runs operations with capped exponential backoff. Sleep is a field
// so tests can observe delays against a virtual clock.
type Retrier struct {
	Attempts int
	Sleep    func(time.Duration)
}

func New(attempts int) *Retrier {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Retrier{Attempts: attempts, Sleep: time.Sleep}
}

// Do runs op up to Attempts times. Errors not matched by retryable surface
// immediately; the delay before retry n is baseDelay*2^(n-1) plus jitter.
// The last error is returned when the budget is exhausted.
func (r *Retrier) Do(ctx context.Context, op func() error, retryable func(error) bool) error {
	var err error
	for attempt := 0; attempt < r.Attempts; attempt++ {
		if attempt > 0 {
			r.Sleep(baseDelay<<uint(attempt-1) + time.Duration(rand.Int63n(int64(time.Second))))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = op(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
	}
	return err
}
