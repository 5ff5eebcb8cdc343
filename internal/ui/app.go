package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nighthub/internal/config"
	"nighthub/internal/fetch"
	"nighthub/internal/github"
	"nighthub/internal/state"
)

// refreshNowMsg requests an immediate fetch cycle. Sent once at startup
// and again whenever the user presses the refresh key.
type refreshNowMsg struct{}

// App is the root Bubbletea model for the workflow dashboard.
type App struct {
	cfg   *config.Config
	orch  *fetch.Orchestrator
	store *state.Store
	sched *state.Scheduler
	sel   state.Selection
	popup state.Popup

	// Run captured when the popup opened, so browser actions keep
	// pointing at it even if a refresh replaces the list underneath.
	popupRun github.WorkflowRun

	spin   spinner.Model
	stream cycleStreamChan

	width  int
	height int

	log *slog.Logger
	now func() time.Time
}

// NewApp creates the dashboard model for the configured repositories.
func NewApp(cfg *config.Config, orch *fetch.Orchestrator, log *slog.Logger) App {
	if log == nil {
		log = slog.Default()
	}
	return App{
		cfg:   cfg,
		orch:  orch,
		store: state.NewStore(cfg.Repos),
		sched: state.NewScheduler(cfg.RefreshInterval),
		spin:  newRefreshSpinner(),
		log:   log,
		now:   time.Now,
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshNowMsg{} },
		tickCmd(),
		m.spin.Tick,
	)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshNowMsg:
		if m.sched.ForceRefresh() {
			return m.beginCycle()
		}
		return m, nil

	case tickMsg:
		if m.sched.Tick(time.Second) {
			model, cmd := m.beginCycle()
			return model, tea.Batch(cmd, tickCmd())
		}
		return m, tickCmd()

	case CycleResultMsg:
		res := msg.Result
		if res.Err != nil {
			m.log.Warn("repo fetch failed", "repo", res.Repo.FullName(), "error", res.Err)
		}
		m.store.Apply(res)
		m.sel.Reconcile(m.store)
		return m, listenForCycle(m.stream)

	case CycleDoneMsg:
		m.store.EndCycle()
		m.sched.CycleComplete()
		m.sel.Reconcile(m.store)
		m.stream = nil
		return m, nil

	case BrowserOpenedMsg:
		if msg.Err != nil {
			m.log.Warn("open in browser failed", "url", m.popupRun.HTMLURL, "error", msg.Err)
		}
		m.popup.ActionDone()
		return m, nil

	case spinner.TickMsg:
		if m.sched.Phase() != state.PhaseRefreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.popup.IsOpen() {
			return m.handlePopupKey(msg)
		}
		return m.handleDashboardKey(msg)
	}

	return m, nil
}

// beginCycle marks every repository as fetching and starts the orchestrator.
func (m App) beginCycle() (tea.Model, tea.Cmd) {
	m.store.BeginCycle()
	m.sched.SetCycleSize(len(m.cfg.Repos))
	ch, listen := startCycleCmd(m.orch, m.cfg.Repos)
	m.stream = ch
	m.log.Debug("refresh cycle started", "repos", len(m.cfg.Repos))
	return m, tea.Batch(listen, m.spin.Tick)
}

func (m App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, DashboardKeys.Up):
		m.sel.Move(state.RepoUp, m.store)
	case key.Matches(msg, DashboardKeys.Down):
		m.sel.Move(state.RepoDown, m.store)
	case key.Matches(msg, DashboardKeys.Left):
		m.sel.Move(state.RunLeft, m.store)
	case key.Matches(msg, DashboardKeys.Right):
		m.sel.Move(state.RunRight, m.store)

	case key.Matches(msg, DashboardKeys.OpenMenu):
		run, ok := m.store.RunAt(m.sel.Repo, m.sel.Run)
		if !ok {
			return m, nil
		}
		m.popupRun = run
		m.popup.Open(m.store.Snapshots()[m.sel.Repo].Repo, m.sel.Run)

	case key.Matches(msg, DashboardKeys.Refresh):
		// Ignored while a cycle is already in flight.
		if m.sched.ForceRefresh() {
			return m.beginCycle()
		}
	}
	return m, nil
}

func (m App) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, PopupKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PopupKeys.Close):
		m.popup.Close()

	// The refresh timer keeps running behind the popup; manual refresh
	// stays available too.
	case key.Matches(msg, DashboardKeys.Refresh):
		if m.sched.ForceRefresh() {
			return m.beginCycle()
		}

	case key.Matches(msg, PopupKeys.Up):
		m.popup.MoveCursor(-1)
	case key.Matches(msg, PopupKeys.Down):
		m.popup.MoveCursor(1)

	case key.Matches(msg, PopupKeys.Confirm):
		action, ok := m.popup.Confirm()
		if !ok {
			return m, nil
		}
		if action == state.ActionOpenBrowser {
			return m, openBrowserCmd(m.popupRun.HTMLURL)
		}
		m.popup.ActionDone()
	}
	return m, nil
}
