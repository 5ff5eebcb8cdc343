package ui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"nighthub/internal/config"
	"nighthub/internal/fetch"
)

// tickCmd returns a command that fires after one second to advance the countdown.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// startCycleCmd launches one fetch cycle in a goroutine and returns the
// channel its results arrive on plus the first listen command. Each repo's
// outcome is forwarded as it lands; CycleDoneMsg follows the last one.
func startCycleCmd(orch *fetch.Orchestrator, repos []config.Repo) (cycleStreamChan, tea.Cmd) {
	ch := make(cycleStreamChan)
	go func() {
		defer close(ch)
		for res := range orch.Run(context.Background(), repos) {
			ch <- CycleResultMsg{Result: res}
		}
		ch <- CycleDoneMsg{}
	}()
	return ch, listenForCycle(ch)
}

// listenForCycle returns a tea.Cmd that reads the next message from the cycle channel.
func listenForCycle(ch cycleStreamChan) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// openBrowserCmd returns a command that opens a URL in the default browser.
func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", url)
		}
		return BrowserOpenedMsg{Err: cmd.Start()}
	}
}
