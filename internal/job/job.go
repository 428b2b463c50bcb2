// Package job defines the conversion job model shared by the runner, the
// batch orchestrator, and the presentation layer: job states, per-job
// options, and the typed event stream that replaces shared mutable UI state.
package job

// State is the lifecycle state of a conversion job. Queued and Running are
// transient; the rest are terminal.
type State int

const (
	StateQueued State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateSkipped   // Output already existed and overwrite is off.
	StateCancelled // User abort while the job was running.
)

// String returns the lowercase display name of the state.
func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateSkipped, StateCancelled:
		return true
	default:
		return false
	}
}

// Options are the per-job conversion settings. Immutable once a job starts.
type Options struct {
	SpeedFactor    float64
	NormalizeAudio bool
	Profile        string // "baseline", "main", or "high"
	OutputDir      string
	Overwrite      bool
}

// Job is one queued source file and its conversion outcome. Jobs are owned
// and mutated exclusively by the batch orchestrator; everyone else sees
// copies via Snapshot.
type Job struct {
	ID         int
	SourcePath string
	OutputPath string
	Options    Options

	State   State
	Percent float64 // 0-100, monotonically non-decreasing while Running.
	// Indeterminate is set when the source duration is unknown and no
	// percentage can be derived from the encoder's progress stream.
	Indeterminate bool
	Err           error
	LogLines      []string
}

// AdvancePercent raises the job's progress, enforcing monotonicity and the
// 100 cap. Regressions from a jittery progress stream are dropped.
func (j *Job) AdvancePercent(p float64) {
	if p > 100 {
		p = 100
	}
	if p > j.Percent {
		j.Percent = p
	}
}
