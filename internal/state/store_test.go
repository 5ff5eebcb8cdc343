package state

import (
	"errors"
	"testing"
	"time"

	"nighthub/internal/config"
	"nighthub/internal/github"
)

func testRepos() []config.Repo {
	return []config.Repo{
		{Owner: "octocat", Name: "alpha"},
		{Owner: "octocat", Name: "beta"},
	}
}

func run(id int64, createdAt time.Time, conclusion github.Conclusion) github.WorkflowRun {
	return github.WorkflowRun{
		ID:         id,
		Name:       "CI",
		Status:     github.StatusCompleted,
		Conclusion: conclusion,
		CreatedAt:  createdAt,
		Branch:     "main",
	}
}

func TestNewStoreShape(t *testing.T) {
	s := NewStore(testRepos())
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	for i, snap := range s.Snapshots() {
		if len(snap.Runs) != 0 || snap.Fetching || snap.LastErr != nil {
			t.Errorf("snapshot %d not empty: %+v", i, snap)
		}
	}
}

func TestApplyReplacesRunsWholesale(t *testing.T) {
	s := NewStore(testRepos())
	now := time.Now()

	s.Apply(FetchResult{
		Repo: config.Repo{Owner: "octocat", Name: "alpha"},
		Runs: []github.WorkflowRun{run(1, now, github.ConclusionFailure)},
	})
	s.Apply(FetchResult{
		Repo: config.Repo{Owner: "octocat", Name: "alpha"},
		Runs: []github.WorkflowRun{run(2, now, github.ConclusionSuccess)},
	})

	runs := s.Snapshots()[0].Runs
	if len(runs) != 1 || runs[0].ID != 2 {
		t.Errorf("runs = %+v, want only run 2", runs)
	}
}

func TestApplySortsAndCaps(t *testing.T) {
	s := NewStore(testRepos())
	base := time.Now()
	var runs []github.WorkflowRun
	for i := 0; i < 6; i++ {
		// Deliberately out of order: oldest first.
		runs = append(runs, run(int64(i), base.Add(time.Duration(i)*time.Minute), github.ConclusionSuccess))
	}

	s.Apply(FetchResult{Repo: testRepos()[0], Runs: runs})

	got := s.Snapshots()[0].Runs
	if len(got) != MaxRunsPerRepo {
		t.Fatalf("got %d runs, want cap %d", len(got), MaxRunsPerRepo)
	}
	if got[0].ID != 5 || got[1].ID != 4 {
		t.Errorf("runs not most-recent-first: %v %v", got[0].ID, got[1].ID)
	}
}

func TestApplyErrorRetainsRuns(t *testing.T) {
	s := NewStore(testRepos())
	now := time.Now()
	repo := testRepos()[1]

	s.Apply(FetchResult{Repo: repo, Runs: []github.WorkflowRun{run(7, now, github.ConclusionSuccess)}})
	fetchErr := &github.APIError{Kind: github.ErrRateLimited}
	s.Apply(FetchResult{Repo: repo, Err: fetchErr})

	snap := s.Snapshots()[1]
	if len(snap.Runs) != 1 || snap.Runs[0].ID != 7 {
		t.Errorf("prior runs lost on error: %+v", snap.Runs)
	}
	if !errors.Is(snap.LastErr, fetchErr) {
		t.Errorf("LastErr = %v, want %v", snap.LastErr, fetchErr)
	}
	if snap.Fetching {
		t.Error("Fetching still set after error applied")
	}
}

func TestApplySuccessClearsError(t *testing.T) {
	s := NewStore(testRepos())
	repo := testRepos()[0]

	s.Apply(FetchResult{Repo: repo, Err: errors.New("boom")})
	s.Apply(FetchResult{Repo: repo, Runs: []github.WorkflowRun{run(1, time.Now(), github.ConclusionSuccess)}})

	snap := s.Snapshots()[0]
	if snap.LastErr != nil {
		t.Errorf("LastErr = %v, want nil after success", snap.LastErr)
	}
	if snap.LastSuccess.IsZero() {
		t.Error("LastSuccess not recorded")
	}
}

func TestApplyUnknownRepoIgnored(t *testing.T) {
	s := NewStore(testRepos())
	s.Apply(FetchResult{Repo: config.Repo{Owner: "nobody", Name: "nothing"}, Err: errors.New("x")})
	for i, snap := range s.Snapshots() {
		if snap.LastErr != nil {
			t.Errorf("snapshot %d affected by unknown repo result", i)
		}
	}
}

func TestCycleFetchingFlags(t *testing.T) {
	s := NewStore(testRepos())

	s.BeginCycle()
	if !s.AnyFetching() {
		t.Fatal("AnyFetching() = false after BeginCycle")
	}

	s.Apply(FetchResult{Repo: testRepos()[0], Runs: nil})
	if s.Snapshots()[0].Fetching {
		t.Error("repo 0 still fetching after its result applied")
	}
	if !s.Snapshots()[1].Fetching {
		t.Error("repo 1 should still be fetching")
	}

	s.EndCycle()
	if s.AnyFetching() {
		t.Error("AnyFetching() = true after EndCycle")
	}
}

func TestSnapshotHealth(t *testing.T) {
	now := time.Now()
	inProgress := run(1, now, github.ConclusionNone)
	inProgress.Status = github.StatusInProgress

	tests := []struct {
		name string
		runs []github.WorkflowRun
		want Health
	}{
		{"no runs", nil, HealthUnknown},
		{"latest success", []github.WorkflowRun{run(1, now, github.ConclusionSuccess)}, HealthHealthy},
		{"latest failure", []github.WorkflowRun{run(1, now, github.ConclusionFailure)}, HealthFailing},
		{"latest timed out", []github.WorkflowRun{run(1, now, github.ConclusionTimedOut)}, HealthFailing},
		{"latest cancelled", []github.WorkflowRun{run(1, now, github.ConclusionCancelled)}, HealthWarning},
		{"latest in progress", []github.WorkflowRun{inProgress}, HealthWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := RepoSnapshot{Runs: tt.runs}
			if got := snap.Health(); got != tt.want {
				t.Errorf("Health() = %v, want %v", got, tt.want)
			}
			if snap.Healthy() != (tt.want == HealthHealthy) {
				t.Errorf("Healthy() = %v", snap.Healthy())
			}
			if snap.Failing() != (tt.want == HealthFailing) {
				t.Errorf("Failing() = %v", snap.Failing())
			}
		})
	}
}

func TestRunAt(t *testing.T) {
	s := NewStore(testRepos())
	s.Apply(FetchResult{Repo: testRepos()[0], Runs: []github.WorkflowRun{run(9, time.Now(), github.ConclusionSuccess)}})

	if got, ok := s.RunAt(0, 0); !ok || got.ID != 9 {
		t.Errorf("RunAt(0,0) = %+v, %v", got, ok)
	}
	if _, ok := s.RunAt(0, 1); ok {
		t.Error("RunAt(0,1) should be out of range")
	}
	if _, ok := s.RunAt(5, 0); ok {
		t.Error("RunAt(5,0) should be out of range")
	}
	if _, ok := s.RunAt(-1, 0); ok {
		t.Error("RunAt(-1,0) should be out of range")
	}
}
