package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickCmd schedules the next poll of the orchestrator.
func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
