package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Repo identifies a monitored GitHub repository. Immutable once built.
type Repo struct {
	Owner string
	Name  string
}

// FullName returns "owner/name".
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// Config is the validated application configuration. The state engine
// receives it as-is and never re-validates.
type Config struct {
	Token           string
	Repos           []Repo
	RefreshInterval time.Duration
	Concurrency     int
	RunsPerRepo     int
	LogFile         string
	LogLevel        string
}

// Defaults and validation bounds.
const (
	DefaultRefreshInterval = 60 * time.Second
	MinRefreshInterval     = 10 * time.Second
	DefaultConcurrency     = 5
	DefaultRunsPerRepo     = 4
)

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("missing required environment variable: GITHUB_TOKEN or GH_TOKEN")
	}
	if !validToken(token) {
		return nil, fmt.Errorf("invalid GitHub token: expected a personal access token starting with ghp_ or github_pat_")
	}

	reposEnv := os.Getenv("REPOS")
	if strings.TrimSpace(reposEnv) == "" {
		return nil, fmt.Errorf("missing required environment variable: REPOS (comma-separated owner/name list)")
	}
	repos, err := ParseRepos(reposEnv)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:           token,
		Repos:           repos,
		RefreshInterval: DefaultRefreshInterval,
		Concurrency:     DefaultConcurrency,
		RunsPerRepo:     DefaultRunsPerRepo,
		LogFile:         os.Getenv("NIGHTHUB_LOG_FILE"),
		LogLevel:        os.Getenv("NIGHTHUB_LOG_LEVEL"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFile == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cfg.LogFile = filepath.Join(dir, "nighthub", "nighthub.log")
		} else {
			cfg.LogFile = "nighthub.log"
		}
	}

	if v := os.Getenv("NIGHTHUB_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse NIGHTHUB_REFRESH_INTERVAL %q: %w", v, err)
		}
		if d < MinRefreshInterval {
			return nil, fmt.Errorf("NIGHTHUB_REFRESH_INTERVAL must be at least %s, got %s", MinRefreshInterval, d)
		}
		cfg.RefreshInterval = d
	}

	if v := os.Getenv("NIGHTHUB_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("NIGHTHUB_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.Concurrency = n
	}

	if v := os.Getenv("NIGHTHUB_RUNS_PER_REPO"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("NIGHTHUB_RUNS_PER_REPO must be a positive integer, got %q", v)
		}
		cfg.RunsPerRepo = n
	}

	return cfg, nil
}

// ParseRepos parses a comma-separated "owner/name" list, preserving order.
func ParseRepos(s string) ([]Repo, error) {
	var repos []Repo
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid repository %q in REPOS: expected owner/name", entry)
		}
		repos = append(repos, Repo{Owner: parts[0], Name: parts[1]})
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("no valid repositories in REPOS")
	}
	return repos, nil
}

func validToken(token string) bool {
	if len(token) < 40 {
		return false
	}
	return strings.HasPrefix(token, "ghp_") || strings.HasPrefix(token, "github_pat_")
}
