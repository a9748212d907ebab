package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b := NewCircuitBreaker(2, 10*time.Second, 1)

	clock := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must admit requests: %v", err)
	}

	b.RecordFailure()
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("one failure below threshold must stay closed, got %s", got)
	}

	b.RecordFailure()
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open after %d failures, got %s", 2, got)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker must reject, got %v", err)
	}

	clock = clock.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe after open timeout must pass: %v", err)
	}
	if got := b.State(); got != CircuitStateHalfOpen {
		t.Fatalf("expected half-open while probing, got %s", got)
	}

	b.RecordSuccess()
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("successful probe must close the breaker, got %s", got)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second, 1)

	clock := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }

	b.RecordFailure()
	clock = clock.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe must be admitted: %v", err)
	}
	// A second caller during the single allowed probe is rejected.
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("probe limit must hold, got %v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("failed probe must reopen the breaker, got %v", err)
	}
}
