package github

import (
	"fmt"
	"time"
)

// ErrorKind classifies API failures for the retry policy.
type ErrorKind int

const (
	// ErrRateLimited means the API rejected the request due to rate limiting.
	ErrRateLimited ErrorKind = iota
	// ErrAuthFailed means the token was rejected.
	ErrAuthFailed
	// ErrNotFound means the repository does not exist or is not visible.
	ErrNotFound
	// ErrNetwork covers transport-level failures and timeouts.
	ErrNetwork
	// ErrOther covers everything else (unexpected status codes, bad JSON).
	ErrOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRateLimited:
		return "rate_limited"
	case ErrAuthFailed:
		return "auth_failed"
	case ErrNotFound:
		return "not_found"
	case ErrNetwork:
		return "network"
	}
	return "other"
}

// APIError is a classified failure from the workflow API.
type APIError struct {
	Kind       ErrorKind
	RetryAfter time.Duration // non-zero only for ErrRateLimited
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("github: %s: %v", e.Kind, e.Err)
	}
	return "github: " + e.Kind.String()
}

func (e *APIError) Unwrap() error { return e.Err }

// Transient reports whether the failure should be retried within a cycle.
// Rate limits and network errors are transient; auth rejections, missing
// repositories, and unexpected responses are terminal for the cycle.
func (e *APIError) Transient() bool {
	return e.Kind == ErrRateLimited || e.Kind == ErrNetwork
}
