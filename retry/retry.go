// Package retry wraps startup calls that may race against dependencies
// still coming up, such as the search engine container.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// DefaultAttempts and DefaultDelay are the bootstrap policy: enough for
	// a cold engine container to come up, short enough to fail deploys fast.
	DefaultAttempts = 10
	DefaultDelay    = 2 * time.Second
)

// Do calls op until it succeeds or attempts are exhausted, waiting for the
// policy's next interval between calls. Context cancellation stops the loop
// with ctx.Err(). The last error is returned when the budget runs out.
func Do(ctx context.Context, attempts int, policy backoff.BackOff, op func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	policy.Reset()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(policy.NextBackOff()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}

// Constant returns a fixed-interval policy for Do.
func Constant(delay time.Duration) backoff.BackOff {
	return backoff.NewConstantBackOff(delay)
}
