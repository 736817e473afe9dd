package resilience

import "context"

// Guard runs fn behind the breaker. isFailure decides which errors count
// against the dependency; nil means every error does. Context cancellation
// by the caller never trips the breaker.
func Guard(ctx context.Context, b *CircuitBreaker, fn func(context.Context) error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.RecordSuccess()
	case ctx.Err() != nil:
		b.RecordSuccess()
	case isFailure == nil || isFailure(err):
		b.RecordFailure()
	default:
		b.RecordSuccess()
	}
	return err
}
