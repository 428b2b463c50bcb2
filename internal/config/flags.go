package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into conversion, behavior, display, and utility.
// Negated flags (e.g. --no-overwrite) are applied after Parse so Config
// defaults hold unless set. A YAML config file (--config) is merged before
// flag values, so flags the user actually passed always win.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad speed value).
func ParseFlags(cfg *Config) error {
	return parseFlags(cfg, os.Args[1:])
}

// parseFlags is the testable core of ParseFlags.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("slidecast", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var extra extraFlags

	defineConversionFlags(fs, cfg, &extra)
	defineBehaviorFlags(fs, cfg, &extra)
	defineDisplayFlags(fs, cfg, &extra)
	defineUtilityFlags(fs, cfg, &extra)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if extra.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if extra.showVersion {
		fmt.Fprintln(os.Stdout, "slidecast v"+version)
		os.Exit(0)
	}

	// Merge the YAML config file first, then re-apply flags the user
	// explicitly set so the CLI always has the last word.
	if cfg.ConfigFile != "" {
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := mergeFile(cfg, cfg.ConfigFile, set); err != nil {
			return err
		}
	}

	applyExtraFlags(cfg, &extra)

	if extra.speedRaw != "" {
		v, err := ParseSpeed(extra.speedRaw)
		if err != nil {
			return err
		}
		cfg.Speed = v
	}

	if cfg.CheckOnly {
		return nil
	}
	cfg.Inputs = fs.Args()
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// extraFlags holds flags that need post-Parse handling: negations of
// defaults, the raw speed string, and exit-after-print flags.
type extraFlags struct {
	speedRaw    string
	noOverwrite bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineConversionFlags registers -s/--speed, --profile, --normalize, -o/--out.
func defineConversionFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.StringVar(&e.speedRaw, "speed", "", "Playback speed factor (e.g. 1.5 or 2x)")
	fs.StringVar(&e.speedRaw, "s", "", "Same as --speed")
	fs.Var(&profileValue{&cfg.Profile}, "profile", "H.264 profile: baseline | main | high")
	fs.BoolVar(&cfg.NormalizeAudio, "normalize", false, "Normalize audio loudness (EBU R128)")
	fs.BoolVar(&cfg.NormalizeAudio, "n", false, "Same as --normalize")
	fs.StringVar(&cfg.OutputDir, "out", "", "Output directory")
	fs.StringVar(&cfg.OutputDir, "o", "", "Same as --out")
}

// defineBehaviorFlags registers overwrite, dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.BoolVar(&e.noOverwrite, "no-overwrite", false, "Skip inputs whose output file already exists")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not convert")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --tui, --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.BoolVar(&cfg.TUI, "tui", false, "Interactive terminal UI")
	fs.BoolVar(&e.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&e.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, e *extraFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file with option defaults")
	fs.BoolVar(&e.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&e.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&e.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&e.showHelp, "h", false, "Same as --help")
}

// applyExtraFlags copies negated flag values into cfg.
func applyExtraFlags(cfg *Config, e *extraFlags) {
	if e.noOverwrite {
		cfg.Overwrite = false
	}
	if e.noColor {
		cfg.ColorMode = ColorNever
	} else if e.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Slidecast v" + version + " — PowerPoint-compatible MP4 converter"},
		{"", ""},
		{"  slidecast [OPTIONS] -o <output_dir> <input>...", ""},
		{"", ""},
		{"Conversion", ""},
		{"  -o, --out <dir>", "Output directory (required)"},
		{"  -s, --speed <factor>", "Playback speed, 0.1-100 (e.g. 1.5 or 2x; default 1.0)"},
		{"  --profile <name>", "H.264 profile: baseline | main | high (default: baseline)"},
		{"  -n, --normalize", "Normalize audio loudness (EBU R128)"},
		{"", ""},
		{"Behavior", ""},
		{"  --no-overwrite", "Skip inputs whose output already exists"},
		{"  -d, --dry-run", "Preview only; do not convert"},
		{"", ""},
		{"Display", ""},
		{"  --tui", "Interactive terminal UI"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file with option defaults"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, libx264, AAC)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the Profile enum type works with flag.Var.

type profileValue struct{ p *Profile }

func (v *profileValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *profileValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "baseline":
		*v.p = ProfileBaseline
	case "main":
		*v.p = ProfileMain
	case "high":
		*v.p = ProfileHigh
	default:
		return fmt.Errorf("invalid profile %q (use 'baseline', 'main' or 'high')", s)
	}
	return nil
}
