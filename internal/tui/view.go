package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/job"
)

// progressBarWidth is the character width of per-job progress bars.
const progressBarWidth = 30

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Slidecast"))
	b.WriteString("\n\n")

	if m.current >= 0 && m.current < len(m.jobs) {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Converting %d of %d: %s",
			m.current+1, len(m.jobs), filepath.Base(m.jobs[m.current].SourcePath))))
		b.WriteString("\n\n")
	}

	for _, j := range m.jobs {
		b.WriteString(renderJob(j))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Overall: %s %s\n",
		renderBar(m.overall, false),
		display.FormatPercent(m.overall, false)))

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, line := range m.logs {
			b.WriteString(InfoStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.summary != "":
		b.WriteString(BoxStyle.Render(m.summary))
		b.WriteString("\n")
	case m.quitting:
		b.WriteString(WarnStyle.Render("Cancelling..."))
		b.WriteString("\n")
	default:
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderJob renders one queue line: state marker, name, progress.
func renderJob(j job.Job) string {
	name := filepath.Base(j.SourcePath)

	switch j.State {
	case job.StateQueued:
		return InfoStyle.Render(fmt.Sprintf("  queued    %s", name))
	case job.StateRunning:
		return RunningStyle.Render(fmt.Sprintf("> running   %s %s %s",
			name, renderBar(j.Percent, j.Indeterminate),
			display.FormatPercent(j.Percent, j.Indeterminate)))
	case job.StateSucceeded:
		return SuccessStyle.Render(fmt.Sprintf("  done      %s", name))
	case job.StateFailed:
		reason := ""
		if j.Err != nil {
			reason = "  (" + j.Err.Error() + ")"
		}
		return ErrorStyle.Render(fmt.Sprintf("  failed    %s%s", name, reason))
	case job.StateSkipped:
		return WarnStyle.Render(fmt.Sprintf("  skipped   %s", name))
	case job.StateCancelled:
		return WarnStyle.Render(fmt.Sprintf("  cancelled %s", name))
	default:
		return name
	}
}

// renderBar draws a fixed-width progress bar; indeterminate progress
// renders as a dashed bar.
func renderBar(pct float64, indeterminate bool) string {
	if indeterminate {
		return "[" + strings.Repeat("-", progressBarWidth) + "]"
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * progressBarWidth)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled) + "]"
}
