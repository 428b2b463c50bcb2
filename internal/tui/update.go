package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/backmassage/slidecast/internal/batch"
	"github.com/backmassage/slidecast/internal/job"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input. Quitting mid-batch cancels
// the running job first; the orchestrator marks the rest Queued.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.cancel()
		if m.phase == batch.PhaseCompleted {
			return m, tea.Quit
		}
		// Keep ticking until the orchestrator finishes unwinding.
		return m, nil
	}
	return m, nil
}

// handleTick pulls a fresh snapshot and drains new bus events.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.jobs = m.orch.Jobs()
	m.phase = m.orch.Phase()
	m.current = m.orch.Current()
	m.overall = m.orch.OverallPercent()

	for _, ev := range m.bus.Since(m.lastSeq) {
		m.lastSeq = ev.Seq
		switch ev.Type {
		case job.EventLog:
			m = m.addLog(ev.Message)
		case job.EventSummary:
			m.summary = ev.Message
		}
	}

	if m.phase == batch.PhaseCompleted && m.summary != "" {
		return m, tea.Quit
	}
	return m, tickCmd()
}
