package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// stderrTailLines caps how much stderr is carried into an EncodeError.
const stderrTailLines = 30

// Process is a running ffmpeg invocation. Progress events arrive on
// Progress until the stream ends; Wait must be called exactly once to
// reap the process and classify its exit.
type Process struct {
	cmd      *exec.Cmd
	ctx      context.Context
	stderr   *bytes.Buffer
	progress chan ProgressEvent
}

// Start launches ffmpeg with the given argument slice (binary at index
// 0, as produced by [Build]). Returns ErrToolNotFound if the binary is
// not resolvable before spawning anything.
func Start(ctx context.Context, args []string) (*Process, error) {
	bin, err := exec.LookPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, args[0])
	}

	cmd := exec.CommandContext(ctx, bin, args[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attach progress pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	p := &Process{
		cmd:      cmd,
		ctx:      ctx,
		stderr:   &stderrBuf,
		progress: make(chan ProgressEvent, 16),
	}

	go func() {
		defer close(p.progress)
		var parser progressParser
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			if ev, ok := parser.Feed(scanner.Text()); ok {
				p.progress <- ev
			}
		}
	}()

	return p, nil
}

// Progress returns the channel of parsed progress blocks. It is closed
// when ffmpeg closes its stdout.
func (p *Process) Progress() <-chan ProgressEvent {
	return p.progress
}

// Wait reaps the process. A context-driven kill maps to ErrCancelled;
// any other non-zero exit becomes an *EncodeError carrying the exit code
// and a classified stderr tail.
func (p *Process) Wait() error {
	err := p.cmd.Wait()
	if err == nil {
		return nil
	}

	if p.ctx.Err() != nil {
		return ErrCancelled
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		tail := lastLines(p.stderr.String(), stderrTailLines)
		return &EncodeError{
			ExitCode: exitErr.ExitCode(),
			Reason:   ClassifyStderr(tail),
			Stderr:   tail,
		}
	}
	return fmt.Errorf("wait for ffmpeg: %w", err)
}

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
