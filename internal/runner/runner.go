// Package runner executes one conversion end to end: probe the source,
// build the plan and command line, spawn ffmpeg, and translate its
// progress stream into percent updates.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/ffmpeg"
	"github.com/backmassage/slidecast/internal/job"
	"github.com/backmassage/slidecast/internal/planner"
	"github.com/backmassage/slidecast/internal/probe"
)

// Update is one progress report from a running conversion. Log carries
// a line to record verbatim (the command echo); progress updates leave
// it empty. Indeterminate marks updates where no percent can be
// computed because the source duration is unknown.
type Update struct {
	Percent       float64
	Indeterminate bool
	Log           string
}

// Handle tracks a conversion started by [Runner.Start]. Updates is
// closed when the conversion finishes; Wait blocks until then and
// returns the final error.
type Handle struct {
	updates chan Update
	done    chan struct{}
	err     error
}

// Updates returns the progress stream for this conversion.
func (h *Handle) Updates() <-chan Update { return h.updates }

// Wait blocks until the conversion finishes and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// encodeProcess is the slice of [ffmpeg.Process] the runner needs;
// tests substitute a fake.
type encodeProcess interface {
	Progress() <-chan ffmpeg.ProgressEvent
	Wait() error
}

type probeFunc func(ctx context.Context, path string) (*probe.Result, error)
type startFunc func(ctx context.Context, args []string) (encodeProcess, error)

// Runner converts single files. The probe and spawn steps are
// injectable so tests can run without the ffmpeg tools installed.
type Runner struct {
	cfg   *config.Config
	probe probeFunc
	start startFunc
}

// New creates a Runner wired to the real ffprobe and ffmpeg binaries.
func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:   cfg,
		probe: probe.Probe,
		start: func(ctx context.Context, args []string) (encodeProcess, error) {
			return ffmpeg.Start(ctx, args)
		},
	}
}

// Start launches the conversion of source into outputPath and returns
// immediately. All progress and the outcome flow through the Handle.
func (r *Runner) Start(ctx context.Context, source string, opts job.Options, outputPath string) *Handle {
	h := &Handle{
		updates: make(chan Update, 32),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		defer close(h.updates)
		h.err = r.run(ctx, source, opts, outputPath, h.updates)
	}()
	return h
}

func (r *Runner) run(ctx context.Context, source string, opts job.Options, outputPath string, updates chan<- Update) error {
	pr, err := r.probe(ctx, source)
	if err != nil {
		return err
	}
	if pr.PrimaryVideo == nil {
		return fmt.Errorf("%w: no video stream", probe.ErrInvalidSource)
	}
	updates <- Update{Log: fmt.Sprintf("probed %s: %s, %s, %s",
		filepath.Base(source), pr.Resolution(),
		display.FormatDuration(pr.Duration()),
		display.FormatBytes(pr.Format.Size))}

	plan := planner.BuildPlan(opts, pr)
	plan.InputPath = source
	plan.OutputPath = outputPath

	args := ffmpeg.Build(r.cfg, plan)
	updates <- Update{Log: "[CMD] " + strings.Join(args, " ")}

	proc, err := r.start(ctx, args)
	if err != nil {
		return err
	}

	// The output is shorter than the source by the speed factor; percent
	// is measured against that expected length.
	var expected time.Duration
	if pr.Duration() > 0 && opts.SpeedFactor > 0 {
		expected = time.Duration(pr.Duration() / opts.SpeedFactor * float64(time.Second))
	}

	last := 0.0
	for ev := range proc.Progress() {
		if expected <= 0 {
			updates <- Update{Indeterminate: true}
			continue
		}
		pct := float64(ev.OutTime) / float64(expected) * 100
		// ffmpeg's out_time can wobble near filter boundaries; never
		// report a lower percent than before.
		if pct < last {
			pct = last
		}
		if pct > 100 {
			pct = 100
		}
		last = pct
		updates <- Update{Percent: pct}
	}

	if err := proc.Wait(); err != nil {
		return err
	}
	updates <- Update{Percent: 100}
	return nil
}
