package commands

import (
	"context"
	"time"

	"waterdelivery/internal/pkg/errs"
)

// RetryOnConflict runs fn until it succeeds, fails with an error that is not a
// transaction conflict, or attempts run out. Every handler in this package
// re-reads its state inside a fresh transaction, so re-running it is safe: a
// transition that did commit is rejected as an invalid transition on retry.
func RetryOnConflict(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	backoff := 10 * time.Millisecond

	attempts = max(attempts, 1)

	var err error
	for attempt := range attempts {
		if err = fn(ctx); err == nil || !errs.IsRetryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
