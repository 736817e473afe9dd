package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	var transitions []string
	b := NewCircuitBreakerFromConfig("mail", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(name string, from, to CircuitState) {
		transitions = append(transitions, name+":"+string(from)+"->"+string(to))
	})

	transient := errors.New("upstream 503")
	permanent := errors.New("bad request")
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	fail := func(err error) func(context.Context) error {
		return func(context.Context) error { return err }
	}

	_ = Guard(context.Background(), b, fail(permanent), isTransient)
	_ = Guard(context.Background(), b, fail(permanent), isTransient)
	if b.State() != CircuitStateClosed {
		t.Fatalf("permanent errors must not open the breaker")
	}

	_ = Guard(context.Background(), b, fail(transient), isTransient)
	_ = Guard(context.Background(), b, fail(transient), isTransient)
	if b.State() != CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", b.State())
	}

	called := false
	err := Guard(context.Background(), b, func(context.Context) error { called = true; return nil }, isTransient)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("open breaker must short-circuit, err=%v called=%v", err, called)
	}

	if len(transitions) != 1 || transitions[0] != "mail:closed->open" {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}

func TestGuard_NilBreaker(t *testing.T) {
	t.Parallel()

	if NewCircuitBreakerFromConfig("off", CircuitBreakerConfig{}, nil) != nil {
		t.Fatalf("disabled config should yield a nil breaker")
	}

	boom := errors.New("boom")
	if err := Guard(context.Background(), nil, func(context.Context) error { return boom }, nil); !errors.Is(err, boom) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
}

func TestGuard_CallerCancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreakerFromConfig("feed", CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = Guard(ctx, b, func(ctx context.Context) error { return ctx.Err() }, nil)
	if b.State() != CircuitStateClosed {
		t.Fatalf("cancelled call should not open the breaker")
	}
}
