package state

import "time"

// Phase is the scheduler's current mode.
type Phase int

const (
	// PhaseIdle means the countdown toward the next automatic refresh is running.
	PhaseIdle Phase = iota
	// PhaseRefreshing means a fetch cycle is in flight.
	PhaseRefreshing
)

// Scheduler owns the refresh countdown and enforces the at-most-one-cycle
// invariant: while a cycle is in flight, neither the timer nor a manual
// refresh can start another.
type Scheduler struct {
	interval  time.Duration
	phase     Phase
	remaining time.Duration
	startedAt time.Time
	total     int
}

// NewScheduler creates a scheduler idling at the full interval.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval:  interval,
		phase:     PhaseIdle,
		remaining: interval,
	}
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Remaining returns the time left until the next automatic refresh.
// Zero while refreshing.
func (s *Scheduler) Remaining() time.Duration {
	if s.phase == PhaseRefreshing {
		return 0
	}
	return s.remaining
}

// StartedAt returns when the in-flight cycle began. Zero while idle.
func (s *Scheduler) StartedAt() time.Time {
	if s.phase != PhaseRefreshing {
		return time.Time{}
	}
	return s.startedAt
}

// Tick advances the countdown by elapsed. It returns true when the countdown
// expired and a fetch cycle should start; the scheduler is then Refreshing.
// Ticks while refreshing are ignored.
func (s *Scheduler) Tick(elapsed time.Duration) bool {
	if s.phase != PhaseIdle {
		return false
	}
	s.remaining -= elapsed
	if s.remaining > 0 {
		return false
	}
	s.begin()
	return true
}

// ForceRefresh requests an immediate cycle, discarding the countdown.
// Returns true if a cycle should start; false (no-op) while one is already
// in flight.
func (s *Scheduler) ForceRefresh() bool {
	if s.phase == PhaseRefreshing {
		return false
	}
	s.begin()
	return true
}

// CycleComplete returns the scheduler to Idle at the full interval. Called
// once per cycle regardless of how many repositories succeeded; a failed
// cycle must never leave the scheduler stuck in Refreshing.
func (s *Scheduler) CycleComplete() {
	s.phase = PhaseIdle
	s.remaining = s.interval
	s.startedAt = time.Time{}
	s.total = 0
}

// SetCycleSize records how many repositories the in-flight cycle covers.
func (s *Scheduler) SetCycleSize(n int) { s.total = n }

// CycleSize returns the repository count of the in-flight cycle.
func (s *Scheduler) CycleSize() int { return s.total }

func (s *Scheduler) begin() {
	s.phase = PhaseRefreshing
	s.remaining = 0
	s.startedAt = time.Now()
}
