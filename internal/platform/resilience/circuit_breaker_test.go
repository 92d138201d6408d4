package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker("apisports", 2, 5*time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []CircuitState
	b.OnStateChange(func(name string, _, to CircuitState) {
		if name != "apisports" {
			t.Errorf("unexpected breaker name %q", name)
		}
		transitions = append(transitions, to)
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second half-open probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d: got=%s want=%s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker("llm", 1, time.Minute, 1)
	errBadInput := errors.New("bad input")
	errUpstream := errors.New("upstream down")
	isUpstream := func(err error) bool { return errors.Is(err, errUpstream) }

	err := b.Execute(func() error { return errBadInput }, isUpstream)
	if !errors.Is(err, errBadInput) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after non-failure error, got %s", state)
	}

	_ = b.Execute(func() error { return errUpstream }, isUpstream)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after upstream failure, got %s", state)
	}

	called := false
	err = b.Execute(func() error { called = true; return nil }, isUpstream)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected rejection without call, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_NilAllowsEverything(t *testing.T) {
	b := NewCircuitBreakerFromConfig("disabled", CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker for disabled config")
	}
	for i := 0; i < 10; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker should allow, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker should report closed, got %s", state)
	}
}

func TestCircuitBreaker_AbandonedCallsLeaveCountersAlone(t *testing.T) {
	b := NewCircuitBreaker("llm", 2, 5*time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	failing := errors.New("upstream 502")
	abandoned := Abandoned(context.Canceled)
	if !errors.Is(abandoned, context.Canceled) {
		t.Fatalf("abandoned error should unwrap to its cause")
	}

	_ = b.Execute(func() error { return failing }, nil)
	for i := 0; i < 5; i++ {
		_ = b.Execute(func() error { return abandoned }, nil)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("abandoned calls must not open the breaker, got %s", state)
	}

	// one more real failure reaches the threshold, so the earlier failure was
	// not reset by the abandoned calls either
	_ = b.Execute(func() error { return failing }, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open, got %s", state)
	}

	now = now.Add(6 * time.Second)
	_ = b.Execute(func() error { return abandoned }, nil)
	if err := b.Allow(); err != nil {
		t.Fatalf("abandoned half-open probe should release its slot, got %v", err)
	}
}
