package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Header
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	countdownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	refreshingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
)

// Repository rows
var (
	repoNameStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	repoNameSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	repoMetaStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	repoErrorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	repoFetchingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	selectionMarkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
)

// Run cells
var (
	runCellStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	runCellSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)
	runTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Status icon colors
var (
	statusSuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusFailureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusRunningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusQueuedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	statusNeutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusTimedOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Popup
var (
	popupBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)
	popupTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	popupItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	popupCursorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true).
		Padding(0, 1)
	popupPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("62")).
		Bold(true)
)

// newRefreshSpinner creates the spinner shown while a cycle is in flight.
func newRefreshSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return s
}
