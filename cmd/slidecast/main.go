// Command slidecast is the CLI entrypoint for the Slidecast converter.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the batch conversion, with a plain log stream
// or the interactive TUI as the presentation layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/backmassage/slidecast/internal/batch"
	"github.com/backmassage/slidecast/internal/check"
	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/display"
	"github.com/backmassage/slidecast/internal/job"
	"github.com/backmassage/slidecast/internal/logging"
	"github.com/backmassage/slidecast/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file
	// capture.
	_ = godotenv.Load() // a missing .env is fine

	cfg := config.DefaultConfig()
	cfg.ApplyEnv()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slidecast: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	if !cfg.TUI {
		display.PrintBanner()
	}

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Inputs must exist up front; a typo'd path should not surface as a
	// mid-batch probe failure.
	for _, input := range cfg.Inputs {
		if _, err := os.Stat(input); err != nil {
			log.Error("Input not found: %s", input)
			return 1
		}
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		return 1
	}

	log.Info("Out: %s", cfg.OutputDir)
	log.Info("Speed: %gx, profile: %s", cfg.Speed, cfg.Profile)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}

	// Fail fast if ffmpeg/ffprobe or the fixed encoders are unavailable.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Signal handling — cancel on SIGINT/SIGTERM so the batch
	// stops after killing the current encode, leaving later jobs queued.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping after current file…")
		cancel()
	}()

	// Phase 4: Run the batch.
	bus := job.NewBus(0)
	orch := batch.New(&cfg, log, bus)
	orch.AddSources(cfg.Inputs)

	var summary batch.Summary
	if cfg.TUI && logging.IsTerminal(os.Stdout) {
		done := make(chan batch.Summary, 1)
		go func() { done <- orch.Run(ctx) }()

		p := tea.NewProgram(tui.NewModel(orch, bus, cancel))
		if _, err := p.Run(); err != nil {
			log.Error("TUI failed: %v", err)
			cancel()
		}
		summary = <-done
	} else {
		summary = orch.Run(ctx)
	}

	log.Info("%s", summary.Line())
	if summary.Failed > 0 {
		return 1
	}
	return 0
}
