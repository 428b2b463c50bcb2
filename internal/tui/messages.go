package tui

import "time"

// Messages for the tea program (polling-based).

// TickMsg triggers the next orchestrator poll.
type TickMsg struct {
	Time time.Time
}
