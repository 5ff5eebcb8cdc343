// Package fetch runs the per-repository fetch cycle: bounded concurrency,
// retry on transient failures, and incremental result delivery.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/semaphore"

	"nighthub/internal/config"
	"nighthub/internal/github"
	"nighthub/internal/state"
)

// Client is the slice of the GitHub API the orchestrator needs.
type Client interface {
	FetchRecentRuns(ctx context.Context, owner, name string, max int) ([]github.WorkflowRun, error)
}

const (
	defaultConcurrency     = 5
	defaultRunsPerRepo     = state.MaxRunsPerRepo
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxElapsed      = 30 * time.Second
)

// Orchestrator fans a fetch cycle out over the configured repositories.
type Orchestrator struct {
	client          Client
	concurrency     int64
	runsPerRepo     int
	initialInterval time.Duration
	maxElapsed      time.Duration
	log             *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency caps the number of in-flight repository fetches.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = int64(n)
		}
	}
}

// WithRunsPerRepo sets how many recent runs to request per repository.
func WithRunsPerRepo(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.runsPerRepo = n
		}
	}
}

// WithRetryBudget bounds the retry loop for transient failures.
func WithRetryBudget(initial, maxElapsed time.Duration) Option {
	return func(o *Orchestrator) {
		if initial > 0 {
			o.initialInterval = initial
		}
		if maxElapsed > 0 {
			o.maxElapsed = maxElapsed
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// New returns an orchestrator backed by the given client.
func New(client Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:          client,
		concurrency:     defaultConcurrency,
		runsPerRepo:     defaultRunsPerRepo,
		initialInterval: defaultInitialInterval,
		maxElapsed:      defaultMaxElapsed,
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run starts one fetch cycle over repos. Each repository's outcome is sent
// on the returned channel as soon as it lands, and the channel closes once
// every repository has reported. The caller owns draining the channel.
func (o *Orchestrator) Run(ctx context.Context, repos []config.Repo) <-chan state.FetchResult {
	out := make(chan state.FetchResult)
	go func() {
		defer close(out)
		sem := semaphore.NewWeighted(o.concurrency)
		var wg sync.WaitGroup
		for _, repo := range repos {
			if err := sem.Acquire(ctx, 1); err != nil {
				out <- state.FetchResult{Repo: repo, Err: err}
				continue
			}
			wg.Add(1)
			go func(repo config.Repo) {
				defer wg.Done()
				defer sem.Release(1)
				if err := ctx.Err(); err != nil {
					out <- state.FetchResult{Repo: repo, Err: err}
					return
				}
				runs, err := o.fetchRuns(ctx, repo)
				if err != nil {
					o.log.Warn("fetch failed",
						"repo", repo.FullName(), "error", err)
				} else {
					o.log.Debug("fetched runs",
						"repo", repo.FullName(), "count", len(runs))
				}
				out <- state.FetchResult{Repo: repo, Runs: runs, Err: err}
			}(repo)
		}
		wg.Wait()
	}()
	return out
}

// fetchRuns fetches one repository, retrying transient failures with
// exponential backoff. Terminal API errors abort the retry loop at once.
func (o *Orchestrator) fetchRuns(ctx context.Context, repo config.Repo) ([]github.WorkflowRun, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = o.initialInterval
	bo.MaxElapsedTime = o.maxElapsed

	var runs []github.WorkflowRun
	op := func() error {
		var err error
		runs, err = o.client.FetchRecentRuns(ctx, repo.Owner, repo.Name, o.runsPerRepo)
		if err == nil {
			return nil
		}
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			if !apiErr.Transient() {
				return backoff.Permanent(err)
			}
			// A rate-limit window longer than the retry budget cannot
			// be waited out this cycle.
			if apiErr.RetryAfter > o.maxElapsed {
				return backoff.Permanent(err)
			}
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		o.log.Debug("retrying fetch",
			"repo", repo.FullName(), "in", next, "error", err)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		return nil, err
	}
	return runs, nil
}
