package job

import (
	"sync"
	"time"
)

// EventType classifies messages emitted during batch execution.
type EventType string

const (
	EventState    EventType = "state"    // Job changed lifecycle state.
	EventProgress EventType = "progress" // Job progress percentage moved.
	EventLog      EventType = "log"      // One log line for a job or the batch.
	EventSummary  EventType = "summary"  // Batch finished; Message holds the summary line.
)

// Event is a sequenced payload consumed by presentation-layer subscribers.
// JobID is -1 for batch-level events.
type Event struct {
	Seq     int64
	Time    time.Time
	Type    EventType
	JobID   int
	State   State
	Percent float64
	Message string
}

// Bus stores recent events and provides incremental reads. Presentation
// layers poll with Since rather than sharing mutable state with the
// orchestrator.
type Bus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewBus creates a bounded in-memory event buffer.
func NewBus(maxEvents int) *Bus {
	if maxEvents <= 0 {
		maxEvents = 1000
	}
	return &Bus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event, assigning its sequence number and timestamp.
func (b *Bus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}
	return event
}

// Since returns events with sequence strictly greater than seq.
func (b *Bus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}
	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}
