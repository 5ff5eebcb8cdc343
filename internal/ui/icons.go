package ui

import (
	"github.com/charmbracelet/lipgloss"

	"nighthub/internal/github"
)

// statusIcon returns the glyph and color for a workflow run's state.
// In-flight runs show their status; completed runs show their conclusion.
func statusIcon(run github.WorkflowRun) (string, lipgloss.Style) {
	switch run.Status {
	case github.StatusQueued:
		return "⏸", statusQueuedStyle
	case github.StatusInProgress:
		return "⟳", statusRunningStyle
	}

	switch run.Conclusion {
	case github.ConclusionSuccess:
		return "✓", statusSuccessStyle
	case github.ConclusionFailure:
		return "✗", statusFailureStyle
	case github.ConclusionCancelled:
		return "⊘", statusNeutralStyle
	case github.ConclusionSkipped:
		return "→", statusNeutralStyle
	case github.ConclusionTimedOut:
		return "⏱", statusTimedOutStyle
	default:
		// Completed runs without a recognized conclusion count as success.
		return "✓", statusSuccessStyle
	}
}
