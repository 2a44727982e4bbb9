package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flaky fails n times before succeeding.
type flaky struct {
	failures int
	calls    int
	err      error
}

func (f *flaky) Name() string { return "flaky" }
func (f *flaky) Close() error { return nil }
func (f *flaky) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func TestRetry_RecoversTransientErrors(t *testing.T) {
	inner := &flaky{failures: 2, err: errors.New("boom")}
	cli := Wrap(inner, Retry(3, time.Millisecond))

	out, err := cli.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok" || inner.calls != 3 {
		t.Fatalf("out=%q calls=%d", out, inner.calls)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flaky{failures: 10, err: errors.New("boom")}
	cli := Wrap(inner, Retry(2, time.Millisecond))

	if _, err := cli.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if inner.calls != 2 {
		t.Fatalf("calls = %d, want 2", inner.calls)
	}
}

func TestRetry_PermanentErrorShortCircuits(t *testing.T) {
	inner := &flaky{failures: 10, err: NewPermanentError(errors.New("context too large"))}
	cli := Wrap(inner, Retry(5, time.Millisecond))

	_, err := cli.Generate(context.Background(), "s", "u")
	if !IsPermanent(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("permanent error must not be retried, calls = %d", inner.calls)
	}
}

func TestRetry_StopsOnCanceledContext(t *testing.T) {
	inner := &flaky{failures: 10, err: errors.New("boom")}
	cli := Wrap(inner, Retry(5, time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cli.Generate(ctx, "s", "u"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// spy records when calls reach the inner client.
type spy struct {
	times []time.Time
}

func (s *spy) Name() string { return "spy" }
func (s *spy) Close() error { return nil }
func (s *spy) Generate(ctx context.Context, system, user string) (string, error) {
	s.times = append(s.times, time.Now())
	return "{}", nil
}

func TestRateLimit_SpacesRequests(t *testing.T) {
	inner := &spy{}
	cli := Wrap(inner, RateLimit(20, 1))
	t.Cleanup(func() { _ = cli.Close() })

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := cli.Generate(ctx, "s", "u"); err != nil {
			t.Fatal(err)
		}
	}
	// 20 rps, burst 1: calls 2 and 3 each wait ~50ms.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("requests not spaced: %v", elapsed)
	}
}

func TestWrap_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Client) Client {
			return clientFunc(func(ctx context.Context, system, user string) (string, error) {
				order = append(order, name)
				return next.Generate(ctx, system, user)
			})
		}
	}
	cli := Wrap(&FakeClient{Response: "{}"}, tag("outer"), tag("inner"))
	if _, err := cli.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("order = %v", order)
	}
}

type clientFunc func(ctx context.Context, system, user string) (string, error)

func (f clientFunc) Name() string { return "func" }
func (f clientFunc) Close() error { return nil }
func (f clientFunc) Generate(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}
