package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultBaseURL    = "https://api.github.com"
	defaultAPITimeout = 15 * time.Second
)

// Client talks to the GitHub Actions REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at an httptest server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a workflow API client authenticated with the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultAPITimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// apiWorkflowRun mirrors the wire shape of a workflow run.
type apiWorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	HeadBranch string    `json:"head_branch"`
	HeadSHA    string    `json:"head_sha"`
	HTMLURL    string    `json:"html_url"`
	Actor      struct {
		Login string `json:"login"`
	} `json:"actor"`
}

type workflowRunsResponse struct {
	TotalCount   int              `json:"total_count"`
	WorkflowRuns []apiWorkflowRun `json:"workflow_runs"`
}

// FetchRecentRuns returns up to max recent workflow runs for a repository,
// most recent first (the API's default ordering).
func (c *Client) FetchRecentRuns(ctx context.Context, owner, name string, max int) ([]WorkflowRun, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs?per_page=%d", c.baseURL, owner, name, max)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &APIError{Kind: ErrOther, Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if apiErr := classifyResponse(resp); apiErr != nil {
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: ErrNetwork, Err: err}
	}

	var parsed workflowRunsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &APIError{Kind: ErrOther, Message: "unexpected response body", Err: err}
	}

	runs := make([]WorkflowRun, 0, len(parsed.WorkflowRuns))
	for _, r := range parsed.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			ID:         r.ID,
			Name:       r.Name,
			Status:     ParseStatus(r.Status),
			Conclusion: ParseConclusion(r.Conclusion),
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			Branch:     r.HeadBranch,
			CommitSHA:  r.HeadSHA,
			Actor:      r.Actor.Login,
			HTMLURL:    r.HTMLURL,
		})
	}
	return runs, nil
}

// classifyResponse maps non-2xx responses to typed API errors.
func classifyResponse(resp *http.Response) *APIError {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &APIError{Kind: ErrAuthFailed, Message: "token rejected"}
	case resp.StatusCode == http.StatusNotFound:
		return &APIError{Kind: ErrNotFound, Message: "repository not found"}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if rateLimited(resp) {
			return &APIError{
				Kind:       ErrRateLimited,
				RetryAfter: retryAfter(resp),
				Message:    "rate limited",
			}
		}
		return &APIError{Kind: ErrAuthFailed, Message: "access forbidden"}
	case resp.StatusCode >= 500:
		return &APIError{Kind: ErrNetwork, Message: fmt.Sprintf("server error (status %d)", resp.StatusCode)}
	default:
		return &APIError{Kind: ErrOther, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
}

// rateLimited reports whether a 403/429 response is a rate-limit rejection
// rather than a permissions problem.
func rateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.Header.Get("Retry-After") != ""
}

// retryAfter extracts the server-suggested wait from rate-limit headers.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if reset, err := strconv.ParseInt(v, 10, 64); err == nil {
			if d := time.Until(time.Unix(reset, 0)); d > 0 {
				return d
			}
		}
	}
	return 0
}
