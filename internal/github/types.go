package github

import "time"

// Status is the lifecycle state of a workflow run.
type Status int

const (
	StatusQueued Status = iota
	StatusInProgress
	StatusCompleted
)

// ParseStatus maps a GitHub API status string to a Status.
// Unknown values map to StatusQueued, matching the API's own default.
func ParseStatus(s string) Status {
	switch s {
	case "queued":
		return StatusQueued
	case "in_progress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	default:
		return StatusQueued
	}
}

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// Conclusion is the outcome of a completed workflow run.
type Conclusion int

const (
	ConclusionNone Conclusion = iota
	ConclusionSuccess
	ConclusionFailure
	ConclusionCancelled
	ConclusionSkipped
	ConclusionTimedOut
)

// ParseConclusion maps a GitHub API conclusion string to a Conclusion.
// An empty string means the run has not concluded yet; any other
// unrecognized value for a completed run is treated as success.
func ParseConclusion(s string) Conclusion {
	switch s {
	case "":
		return ConclusionNone
	case "success":
		return ConclusionSuccess
	case "failure":
		return ConclusionFailure
	case "cancelled":
		return ConclusionCancelled
	case "skipped":
		return ConclusionSkipped
	case "timed_out":
		return ConclusionTimedOut
	default:
		return ConclusionSuccess
	}
}

func (c Conclusion) String() string {
	switch c {
	case ConclusionSuccess:
		return "success"
	case ConclusionFailure:
		return "failure"
	case ConclusionCancelled:
		return "cancelled"
	case ConclusionSkipped:
		return "skipped"
	case ConclusionTimedOut:
		return "timed_out"
	}
	return "none"
}

// WorkflowRun is one observed workflow execution. Immutable once constructed;
// a repository's run list is replaced wholesale on each successful fetch.
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     Status
	Conclusion Conclusion
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Branch     string
	CommitSHA  string
	Actor      string
	HTMLURL    string
}
