package state

import "nighthub/internal/config"

// PopupPhase is the contextual-menu lifecycle state.
type PopupPhase int

const (
	PopupClosed PopupPhase = iota
	PopupOpen
	PopupActionPending
)

// Action is a context-menu entry.
type Action int

const (
	ActionOpenBrowser Action = iota
	ActionCloseMenu
)

// Actions lists the menu entries in display order.
var Actions = []Action{ActionOpenBrowser, ActionCloseMenu}

func (a Action) String() string {
	switch a {
	case ActionOpenBrowser:
		return "Open in Browser"
	case ActionCloseMenu:
		return "Close Menu"
	}
	return ""
}

// Popup models the contextual menu. Opening captures the selection by value:
// the target does not follow later navigation, so closing and reopening
// re-captures a fresh selection.
type Popup struct {
	phase    PopupPhase
	target   config.Repo
	runIndex int
	cursor   int
	pending  Action
}

// Phase returns the current lifecycle phase.
func (p *Popup) Phase() PopupPhase { return p.phase }

// IsOpen reports whether the popup intercepts input (Open or ActionPending).
func (p *Popup) IsOpen() bool { return p.phase != PopupClosed }

// Target returns the captured repository and run index.
func (p *Popup) Target() (config.Repo, int) { return p.target, p.runIndex }

// Cursor returns the highlighted menu entry index.
func (p *Popup) Cursor() int { return p.cursor }

// Pending returns the action awaiting completion. Meaningful only in
// PopupActionPending.
func (p *Popup) Pending() Action { return p.pending }

// Open captures the given selection target and shows the menu.
// No-op unless closed.
func (p *Popup) Open(target config.Repo, runIndex int) {
	if p.phase != PopupClosed {
		return
	}
	p.phase = PopupOpen
	p.target = target
	p.runIndex = runIndex
	p.cursor = 0
}

// Close dismisses the menu from any state.
func (p *Popup) Close() {
	p.phase = PopupClosed
	p.cursor = 0
}

// MoveCursor shifts the menu highlight, saturating at the ends.
func (p *Popup) MoveCursor(delta int) {
	if p.phase != PopupOpen {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor > len(Actions)-1 {
		p.cursor = len(Actions) - 1
	}
}

// Confirm selects the highlighted entry. For actions with side effects it
// transitions to ActionPending and returns the action with ok=true; the
// caller completes it via ActionDone. "Close Menu" closes immediately.
func (p *Popup) Confirm() (Action, bool) {
	if p.phase != PopupOpen {
		return 0, false
	}
	action := Actions[p.cursor]
	if action == ActionCloseMenu {
		p.Close()
		return 0, false
	}
	p.phase = PopupActionPending
	p.pending = action
	return action, true
}

// ActionDone completes the pending action, success or failure, and closes.
func (p *Popup) ActionDone() {
	if p.phase != PopupActionPending {
		return
	}
	p.Close()
}
