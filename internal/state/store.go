// Package state holds the application state engine: the snapshot store,
// refresh scheduler, selection model, and popup state machine. Everything in
// this package is synchronous and constant-time; concurrent fetch results
// reach it through the UI loop's message hand-off, never directly.
package state

import (
	"sort"
	"time"

	"nighthub/internal/config"
	"nighthub/internal/github"
)

// MaxRunsPerRepo caps how many runs a snapshot retains.
const MaxRunsPerRepo = 4

// RepoSnapshot is the last-known run data for one monitored repository.
type RepoSnapshot struct {
	Repo        config.Repo
	Runs        []github.WorkflowRun // most-recent-first, len <= MaxRunsPerRepo
	LastSuccess time.Time
	LastErr     error
	Fetching    bool
}

// Health summarizes a repository by its most recent run.
type Health int

const (
	HealthUnknown Health = iota
	HealthHealthy
	HealthWarning
	HealthFailing
)

// Health classifies the most recent run: success is healthy, failure or
// timeout is failing, anything in flight or inconclusive is a warning.
func (s *RepoSnapshot) Health() Health {
	if len(s.Runs) == 0 {
		return HealthUnknown
	}
	latest := s.Runs[0]
	if latest.Status != github.StatusCompleted {
		return HealthWarning
	}
	switch latest.Conclusion {
	case github.ConclusionSuccess:
		return HealthHealthy
	case github.ConclusionFailure, github.ConclusionTimedOut:
		return HealthFailing
	default:
		return HealthWarning
	}
}

// Healthy reports whether the most recent run concluded successfully.
func (s *RepoSnapshot) Healthy() bool { return s.Health() == HealthHealthy }

// Failing reports whether the most recent run concluded in failure.
func (s *RepoSnapshot) Failing() bool { return s.Health() == HealthFailing }

// FetchResult is one repository's outcome within a fetch cycle.
// Exactly one of Runs/Err is meaningful.
type FetchResult struct {
	Repo config.Repo
	Runs []github.WorkflowRun
	Err  error
}

// Store owns the ordered repository snapshots. Order matches configuration
// and never changes; identities are never reassigned, only run lists replaced.
type Store struct {
	snapshots []RepoSnapshot
	index     map[string]int // full name -> position in snapshots
}

// NewStore builds a store with one empty snapshot per configured repository.
func NewStore(repos []config.Repo) *Store {
	s := &Store{
		snapshots: make([]RepoSnapshot, len(repos)),
		index:     make(map[string]int, len(repos)),
	}
	for i, r := range repos {
		s.snapshots[i] = RepoSnapshot{Repo: r}
		s.index[r.FullName()] = i
	}
	return s
}

// Snapshots returns the ordered snapshots for rendering. Callers must not
// mutate the returned slice.
func (s *Store) Snapshots() []RepoSnapshot { return s.snapshots }

// Len returns the number of monitored repositories.
func (s *Store) Len() int { return len(s.snapshots) }

// RunCount returns the number of runs held for the repository at index i,
// or 0 if i is out of range.
func (s *Store) RunCount(i int) int {
	if i < 0 || i >= len(s.snapshots) {
		return 0
	}
	return len(s.snapshots[i].Runs)
}

// RunAt returns the run at (repo, run) indices, or false if out of range.
func (s *Store) RunAt(repo, run int) (github.WorkflowRun, bool) {
	if repo < 0 || repo >= len(s.snapshots) {
		return github.WorkflowRun{}, false
	}
	runs := s.snapshots[repo].Runs
	if run < 0 || run >= len(runs) {
		return github.WorkflowRun{}, false
	}
	return runs[run], true
}

// BeginCycle marks every repository as having a fetch in flight.
func (s *Store) BeginCycle() {
	for i := range s.snapshots {
		s.snapshots[i].Fetching = true
	}
}

// EndCycle clears any in-flight markers left at cycle completion. Normally a
// no-op: Apply clears the flag per repository as results arrive.
func (s *Store) EndCycle() {
	for i := range s.snapshots {
		s.snapshots[i].Fetching = false
	}
}

// Apply records one repository's fetch outcome. On success the run list is
// replaced wholesale, sorted most-recent-first and capped; prior runs are
// retained on failure so the display can keep showing last-known data.
// Results for unknown repositories are ignored.
func (s *Store) Apply(res FetchResult) {
	i, ok := s.index[res.Repo.FullName()]
	if !ok {
		return
	}
	snap := &s.snapshots[i]
	snap.Fetching = false

	if res.Err != nil {
		snap.LastErr = res.Err
		return
	}

	runs := make([]github.WorkflowRun, len(res.Runs))
	copy(runs, res.Runs)
	sort.SliceStable(runs, func(a, b int) bool {
		return runs[a].CreatedAt.After(runs[b].CreatedAt)
	})
	if len(runs) > MaxRunsPerRepo {
		runs = runs[:MaxRunsPerRepo]
	}
	snap.Runs = runs
	snap.LastErr = nil
	snap.LastSuccess = time.Now()
}

// AnyFetching reports whether any repository still has a fetch in flight.
func (s *Store) AnyFetching() bool {
	for i := range s.snapshots {
		if s.snapshots[i].Fetching {
			return true
		}
	}
	return false
}
