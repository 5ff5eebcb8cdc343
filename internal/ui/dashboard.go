package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"nighthub/internal/github"
	"nighthub/internal/state"
)

const (
	minWidth     = 60
	minHeight    = 8
	runNameWidth = 22
)

func (m App) View() string {
	if m.width == 0 {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		msg := repoErrorStyle.Bold(true).
			Render(fmt.Sprintf("Terminal too small. Please resize to at least %d×%d.", minWidth, minHeight))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var content string
	if m.popup.IsOpen() {
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.renderPopup())
	} else {
		content = lipgloss.NewStyle().
			Width(m.width).
			Height(contentHeight).
			MaxHeight(contentHeight).
			Render(m.renderRepos())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m App) renderHeader() string {
	title := titleStyle.Render("nighthub")

	var right string
	if m.sched.Phase() == state.PhaseRefreshing {
		right = refreshingStyle.Render(m.spin.View() + " refreshing…")
	} else {
		right = countdownStyle.Render("next refresh in " + countdown(m.sched.Remaining()))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right + "\n"
}

func (m App) renderRepos() string {
	snapshots := m.store.Snapshots()
	if len(snapshots) == 0 {
		return repoMetaStyle.Padding(1, 2).Render("No repositories configured. Set REPOS=owner/name,owner/name.")
	}

	now := m.now()
	sections := make([]string, 0, len(snapshots))
	for i, snap := range snapshots {
		sections = append(sections, m.renderRepo(i, &snap, now))
	}
	return strings.Join(sections, "\n")
}

func (m App) renderRepo(i int, snap *state.RepoSnapshot, now time.Time) string {
	selected := i == m.sel.Repo

	marker := "  "
	nameStyle := repoNameStyle
	if selected {
		marker = selectionMarkerStyle.Render("▸ ")
		nameStyle = repoNameSelectedStyle
	}

	head := marker + nameStyle.Render(snap.Repo.FullName())
	switch {
	case snap.Fetching:
		head += " " + repoFetchingStyle.Render("⟳")
	case snap.LastErr != nil:
		head += " " + repoErrorStyle.Render("! "+snap.LastErr.Error())
	case !snap.LastSuccess.IsZero():
		head += " " + repoMetaStyle.Render("updated "+relativeTime(snap.LastSuccess, now))
	}

	if len(snap.Runs) == 0 {
		return head + "\n  " + repoMetaStyle.Render("no recent runs")
	}

	cells := make([]string, 0, len(snap.Runs))
	for j, run := range snap.Runs {
		cells = append(cells, m.renderRunCell(run, selected && j == m.sel.Run, now))
	}
	return head + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m App) renderRunCell(run github.WorkflowRun, selected bool, now time.Time) string {
	icon, iconStyle := statusIcon(run)

	name := ansi.Truncate(run.Name, runNameWidth, "…")
	title := iconStyle.Render(icon) + " " + runTitleStyle.Render(name)

	meta := ansi.Truncate(run.Branch, runNameWidth, "…")
	if meta != "" {
		meta += " · "
	}
	meta += relativeTime(run.CreatedAt, now)

	body := title + "\n" + runMetaStyle.Render(meta)
	if selected {
		return runCellSelectedStyle.Render(body)
	}
	return runCellStyle.Render(body)
}

func (m App) renderPopup() string {
	repo, runIdx := m.popup.Target()

	lines := []string{
		popupTitleStyle.Render(fmt.Sprintf("%s · %s", repo.FullName(), m.popupRun.Name)),
		popupItemStyle.Render(fmt.Sprintf("run #%d on %s", runIdx+1, m.popupRun.Branch)),
		"",
	}
	for i, action := range state.Actions {
		if i == m.popup.Cursor() {
			lines = append(lines, popupCursorStyle.Render("▸ "+action.String()))
		} else {
			lines = append(lines, popupItemStyle.Render("  "+action.String()))
		}
	}
	if m.popup.Phase() == state.PopupActionPending {
		lines = append(lines, "", popupPendingStyle.Render("opening…"))
	}

	return popupBorderStyle.Render(strings.Join(lines, "\n"))
}

func (m App) renderStatusBar() string {
	var hints string
	if m.popup.IsOpen() {
		hints = " [j/k]move [Enter]confirm [Esc]close"
	} else {
		hints = " [j/k]repo [h/l]run [Enter]menu [f]refresh [q]quit"
	}

	var healthy, failing int
	for i := range m.store.Snapshots() {
		switch m.store.Snapshots()[i].Health() {
		case state.HealthHealthy:
			healthy++
		case state.HealthFailing:
			failing++
		}
	}
	info := fmt.Sprintf(" %d/%d healthy ", healthy, m.store.Len())
	if failing > 0 {
		info = fmt.Sprintf(" %d/%d healthy · %d failing ", healthy, m.store.Len(), failing)
	}

	left := statusBarAccentStyle.Render(hints)
	right := statusBarStyle.Render(info)
	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return statusBarStyle.Width(m.width).Render(left + statusBarStyle.Render(strings.Repeat(" ", padding)) + right)
}
