package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"nighthub/internal/config"
	"nighthub/internal/fetch"
	"nighthub/internal/github"
	"nighthub/internal/logging"
	"nighthub/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "version") {
		fmt.Printf("nighthub %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.Setup(cfg.LogFile, cfg.LogLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseFile()

	client := github.NewClient(cfg.Token)
	orch := fetch.New(client,
		fetch.WithConcurrency(cfg.Concurrency),
		fetch.WithRunsPerRepo(cfg.RunsPerRepo),
		fetch.WithLogger(log),
	)

	log.Info("starting", "version", version, "repos", len(cfg.Repos),
		"interval", cfg.RefreshInterval)

	p := tea.NewProgram(ui.NewApp(cfg, orch, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
