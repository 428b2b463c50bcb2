// Package tui is the interactive presentation layer: a bubbletea program
// that polls the batch orchestrator's snapshots and event bus and renders
// per-job progress. It never mutates batch state other than cancelling.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/backmassage/slidecast/internal/batch"
	"github.com/backmassage/slidecast/internal/job"
)

// maxLogLines is how many recent activity lines the view keeps.
const maxLogLines = 8

// Model is the TUI state, synced from the orchestrator on every tick.
type Model struct {
	orch   *batch.Orchestrator
	bus    *job.Bus
	cancel context.CancelFunc

	jobs    []job.Job
	phase   batch.Phase
	current int
	overall float64
	logs    []string
	lastSeq int64

	summary  string
	quitting bool
}

// NewModel creates a model attached to an orchestrator that main runs in
// a separate goroutine. cancel aborts the batch when the user quits.
func NewModel(orch *batch.Orchestrator, bus *job.Bus, cancel context.CancelFunc) Model {
	return Model{
		orch:    orch,
		bus:     bus,
		cancel:  cancel,
		jobs:    orch.Jobs(),
		current: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// addLog appends a line, keeping only the most recent window.
func (m Model) addLog(line string) Model {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	return m
}
