// Package batch runs a queue of conversion jobs strictly serially,
// publishing state, progress, and log events for whichever presentation
// layer is attached.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/ffmpeg"
	"github.com/backmassage/slidecast/internal/job"
	"github.com/backmassage/slidecast/internal/logging"
	"github.com/backmassage/slidecast/internal/naming"
	"github.com/backmassage/slidecast/internal/runner"
)

// Phase is the batch lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
)

// Summary is the final tally of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Cancelled int
	Elapsed   time.Duration
	Log       []string
}

// Line renders the one-line closing summary.
func (s Summary) Line() string {
	return fmt.Sprintf("%d succeeded, %d failed, %d skipped, %d cancelled (of %d) in %s",
		s.Succeeded, s.Failed, s.Skipped, s.Cancelled, s.Total,
		display.FormatDuration(s.Elapsed.Seconds()))
}

// conversion is the slice of [runner.Handle] the orchestrator needs;
// tests substitute a fake.
type conversion interface {
	Updates() <-chan runner.Update
	Wait() error
}

type startFunc func(ctx context.Context, source string, opts job.Options, outputPath string) conversion

// Orchestrator owns the job queue. Jobs are mutated only by Run's
// goroutine; presentation layers read copies via Jobs and poll the bus.
type Orchestrator struct {
	mu    sync.RWMutex
	cfg   *config.Config
	log   *logging.Logger
	bus   *job.Bus
	start startFunc

	jobs    []*job.Job
	phase   Phase
	current int // index of the running job, -1 if none
	batch   []string
}

// New creates an orchestrator wired to the real runner.
func New(cfg *config.Config, log *logging.Logger, bus *job.Bus) *Orchestrator {
	r := runner.New(cfg)
	return &Orchestrator{
		cfg: cfg,
		log: log,
		bus: bus,
		start: func(ctx context.Context, source string, opts job.Options, outputPath string) conversion {
			return r.Start(ctx, source, opts, outputPath)
		},
		current: -1,
	}
}

// AddSources queues one job per source path, in order. Output paths are
// assigned up front so name collisions inside the batch resolve
// deterministically.
func (o *Orchestrator) AddSources(sources []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	opts := job.Options{
		SpeedFactor:    o.cfg.Speed,
		NormalizeAudio: o.cfg.NormalizeAudio,
		Profile:        string(o.cfg.Profile),
		OutputDir:      o.cfg.OutputDir,
		Overwrite:      o.cfg.Overwrite,
	}

	resolver := naming.NewCollisionResolver()
	for _, source := range sources {
		requested := naming.OutputPath(source, o.cfg.OutputDir)
		o.jobs = append(o.jobs, &job.Job{
			ID:         len(o.jobs),
			SourcePath: source,
			OutputPath: resolver.Resolve(source, requested),
			Options:    opts,
			State:      job.StateQueued,
		})
	}
}

// Jobs returns a snapshot copy of the queue.
func (o *Orchestrator) Jobs() []job.Job {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]job.Job, len(o.jobs))
	for i, j := range o.jobs {
		out[i] = *j
	}
	return out
}

// Phase returns the batch lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.phase
}

// Current returns the index of the running job, or -1 when none is
// running.
func (o *Orchestrator) Current() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// OverallPercent blends completed jobs with the running job's progress:
// (completed + current/100) / total, as a 0-100 value.
func (o *Orchestrator) OverallPercent() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(o.jobs) == 0 {
		return 0
	}
	done := 0.0
	for _, j := range o.jobs {
		if j.State.Terminal() {
			done++
		} else if j.State == job.StateRunning {
			done += j.Percent / 100
		}
	}
	return done / float64(len(o.jobs)) * 100
}

// Run processes the queue serially. A job failure never aborts its
// siblings; cancellation marks the running job Cancelled and leaves
// later jobs Queued. Run may be called once per orchestrator.
func (o *Orchestrator) Run(ctx context.Context) Summary {
	started := time.Now()
	o.setPhase(PhaseRunning)

	for i := range o.jobs {
		if ctx.Err() != nil {
			break
		}
		o.runJob(ctx, i)
	}

	o.setPhase(PhaseCompleted)
	summary := o.tally(time.Since(started))
	o.bus.Publish(job.Event{Type: job.EventSummary, JobID: -1, Message: summary.Line()})
	return summary
}

func (o *Orchestrator) runJob(ctx context.Context, i int) {
	o.mu.RLock()
	j := o.jobs[i]
	source, output, opts := j.SourcePath, j.OutputPath, j.Options
	o.mu.RUnlock()

	if !opts.Overwrite {
		if _, err := os.Stat(output); err == nil {
			o.logLine(i, fmt.Sprintf("skipping %s: output exists", source))
			o.setState(i, job.StateSkipped)
			return
		}
	}

	if o.cfg.DryRun {
		o.logLine(i, fmt.Sprintf("dry-run: %s -> %s", source, output))
		o.setState(i, job.StateSkipped)
		return
	}

	o.setState(i, job.StateRunning)
	o.log.Info("converting %s -> %s", source, output)

	handle := o.start(ctx, source, opts, output)
	for u := range handle.Updates() {
		switch {
		case u.Log != "":
			o.logLine(i, u.Log)
		case u.Indeterminate:
			o.setIndeterminate(i)
		default:
			o.setPercent(i, u.Percent)
		}
	}

	err := handle.Wait()
	switch {
	case err == nil:
		o.setState(i, job.StateSucceeded)
		o.log.Success("finished %s", output)
	case errors.Is(err, ffmpeg.ErrCancelled) || errors.Is(err, context.Canceled):
		o.setJobErr(i, err)
		o.setState(i, job.StateCancelled)
		o.log.Warn("cancelled %s", source)
	default:
		o.setJobErr(i, err)
		o.logLine(i, "error: "+err.Error())
		o.setState(i, job.StateFailed)
		o.log.Error("failed %s: %v", source, err)
	}
}

func (o *Orchestrator) tally(elapsed time.Duration) Summary {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := Summary{
		Total:   len(o.jobs),
		Elapsed: elapsed,
		Log:     append([]string(nil), o.batch...),
	}
	for _, j := range o.jobs {
		switch j.State {
		case job.StateSucceeded:
			s.Succeeded++
		case job.StateFailed:
			s.Failed++
		case job.StateSkipped:
			s.Skipped++
		case job.StateCancelled:
			s.Cancelled++
		}
	}
	return s
}

// --- State mutation helpers (lock, mutate, publish) ---

func (o *Orchestrator) setPhase(p Phase) {
	o.mu.Lock()
	o.phase = p
	o.mu.Unlock()
}

func (o *Orchestrator) setState(i int, s job.State) {
	o.mu.Lock()
	o.jobs[i].State = s
	if s == job.StateRunning {
		o.current = i
	} else if o.current == i {
		o.current = -1
	}
	o.mu.Unlock()
	o.bus.Publish(job.Event{Type: job.EventState, JobID: i, State: s})
}

func (o *Orchestrator) setPercent(i int, p float64) {
	o.mu.Lock()
	o.jobs[i].AdvancePercent(p)
	p = o.jobs[i].Percent
	o.mu.Unlock()
	o.bus.Publish(job.Event{Type: job.EventProgress, JobID: i, Percent: p})
}

func (o *Orchestrator) setIndeterminate(i int) {
	o.mu.Lock()
	o.jobs[i].Indeterminate = true
	o.mu.Unlock()
}

func (o *Orchestrator) setJobErr(i int, err error) {
	o.mu.Lock()
	o.jobs[i].Err = err
	o.mu.Unlock()
}

func (o *Orchestrator) logLine(i int, line string) {
	o.mu.Lock()
	o.jobs[i].LogLines = append(o.jobs[i].LogLines, line)
	o.batch = append(o.batch, line)
	o.mu.Unlock()
	o.bus.Publish(job.Event{Type: job.EventLog, JobID: i, Message: line})
	o.log.Debug(o.cfg.Verbose, "%s", line)
}
