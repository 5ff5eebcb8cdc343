package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"nighthub/internal/state"
)

// -- Refresh cycle --

// tickMsg fires once a second to drive the countdown.
type tickMsg struct{}

// CycleResultMsg carries one repository's fetch outcome as soon as it lands.
type CycleResultMsg struct {
	Result state.FetchResult
}

// CycleDoneMsg is sent after every repository in the cycle has reported.
type CycleDoneMsg struct{}

// -- Popup actions --

// BrowserOpenedMsg is sent after an open-in-browser attempt, success or not.
type BrowserOpenedMsg struct {
	Err error
}

// -- Internal streaming --

// cycleStreamChan carries per-repo results and the cycle-done marker from
// the orchestrator goroutine into the update loop.
type cycleStreamChan chan tea.Msg
