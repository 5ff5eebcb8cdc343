package state

import (
	"testing"
	"time"
)

func TestSchedulerInitialState(t *testing.T) {
	s := NewScheduler(60 * time.Second)
	if s.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want PhaseIdle", s.Phase())
	}
	if s.Remaining() != 60*time.Second {
		t.Errorf("Remaining() = %s, want 60s", s.Remaining())
	}
}

func TestSchedulerTickCountdown(t *testing.T) {
	s := NewScheduler(3 * time.Second)

	if s.Tick(time.Second) {
		t.Fatal("Tick fired with 2s remaining")
	}
	if s.Remaining() != 2*time.Second {
		t.Errorf("Remaining() = %s, want 2s", s.Remaining())
	}
	if s.Tick(time.Second) {
		t.Fatal("Tick fired with 1s remaining")
	}
	if !s.Tick(time.Second) {
		t.Fatal("Tick did not fire at zero")
	}
	if s.Phase() != PhaseRefreshing {
		t.Errorf("Phase() = %v, want PhaseRefreshing", s.Phase())
	}
}

func TestSchedulerTickIgnoredWhileRefreshing(t *testing.T) {
	s := NewScheduler(time.Second)
	if !s.Tick(time.Second) {
		t.Fatal("expected cycle start")
	}
	// Countdown expired again while refreshing must not start a second cycle.
	for i := 0; i < 10; i++ {
		if s.Tick(time.Second) {
			t.Fatal("Tick started a cycle while already refreshing")
		}
	}
}

func TestForceRefreshFromIdle(t *testing.T) {
	s := NewScheduler(60 * time.Second)
	if !s.ForceRefresh() {
		t.Fatal("ForceRefresh() = false while idle")
	}
	if s.Phase() != PhaseRefreshing {
		t.Errorf("Phase() = %v, want PhaseRefreshing", s.Phase())
	}
	if s.StartedAt().IsZero() {
		t.Error("StartedAt() is zero during a cycle")
	}
}

func TestForceRefreshNoOpWhileRefreshing(t *testing.T) {
	s := NewScheduler(60 * time.Second)
	if !s.ForceRefresh() {
		t.Fatal("first ForceRefresh should start a cycle")
	}
	if s.ForceRefresh() {
		t.Fatal("second ForceRefresh started a concurrent cycle")
	}
}

func TestCycleCompleteResetsInterval(t *testing.T) {
	s := NewScheduler(30 * time.Second)
	s.Tick(10 * time.Second)
	s.ForceRefresh()
	s.SetCycleSize(3)

	s.CycleComplete()

	if s.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want PhaseIdle", s.Phase())
	}
	if s.Remaining() != 30*time.Second {
		t.Errorf("Remaining() = %s, want full 30s interval", s.Remaining())
	}
	if s.CycleSize() != 0 {
		t.Errorf("CycleSize() = %d, want 0", s.CycleSize())
	}
	if !s.StartedAt().IsZero() {
		t.Error("StartedAt() non-zero while idle")
	}
}

func TestCycleCompleteAlwaysRecovers(t *testing.T) {
	// A cycle that "failed" (no per-repo successes) must still return to Idle.
	s := NewScheduler(15 * time.Second)
	s.ForceRefresh()
	s.CycleComplete()
	if s.Phase() != PhaseIdle {
		t.Fatal("scheduler stuck in Refreshing after failed cycle")
	}
	// And the next cycle can start normally.
	if !s.ForceRefresh() {
		t.Fatal("cannot start a new cycle after completion")
	}
}

func TestSchedulerTickLargeElapsed(t *testing.T) {
	s := NewScheduler(5 * time.Second)
	if !s.Tick(time.Minute) {
		t.Fatal("Tick with elapsed past zero did not fire")
	}
}
