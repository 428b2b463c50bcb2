// Package config holds runtime configuration: defaults, CLI flag parsing,
// optional YAML config file merging, and validation.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Profile selects the H.264 encoder profile preset. Each preset bundles
// the profile name with a level, x264 preset, and CRF tuned for the
// target player.
type Profile string

const (
	ProfileBaseline Profile = "baseline" // Most compatible (L3.1, veryfast, CRF 20). Default.
	ProfileMain     Profile = "main"     // Balanced (L4.0, faster, CRF 20).
	ProfileHigh     Profile = "high"     // High quality (L4.1, fast, CRF 18).
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Speed factor bounds. Values outside this range are rejected rather than
// silently clamped; a factor of 0.09x or 500x is almost certainly a typo.
const (
	SpeedMin = 0.1
	SpeedMax = 100.0
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally merged with a YAML config file, and then mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Inputs (set from positional args) and output directory.
	Inputs    []string
	OutputDir string

	// Conversion options.
	Speed          float64 // Playback speed multiplier. Default: 1.0.
	Profile        Profile // H.264 profile preset. Default: baseline.
	NormalizeAudio bool    // Apply loudness normalization.
	Overwrite      bool    // Default: true. Cleared by --no-overwrite.

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	TUI       bool // Interactive terminal UI instead of plain logs.
	ColorMode ColorMode
	LogFile   string // Optional log file path.
	CheckOnly bool   // Run --check diagnostics and exit.

	// Encoder binary. Default "ffmpeg"; overridable via SLIDECAST_FFMPEG.
	FFmpegPath string

	// Optional YAML config file (--config).
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// config file and CLI overrides are applied.
func DefaultConfig() Config {
	return Config{
		Speed:          1.0,
		Profile:        ProfileBaseline,
		NormalizeAudio: false,
		Overwrite:      true,
		ColorMode:      ColorAuto,
		FFmpegPath:     "ffmpeg",
	}
}

// ApplyEnv reads SLIDECAST_* environment variables into cfg. Called after
// godotenv has loaded any .env file and before flag parsing, so explicit
// flags still win.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SLIDECAST_FFMPEG"); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv("SLIDECAST_LOG"); v != "" {
		c.LogFile = v
	}
}

// Validate checks enum fields, the speed factor bounds, and (when not in
// CheckOnly mode) that at least one input and an output directory are set.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileBaseline, ProfileMain, ProfileHigh:
		// valid
	default:
		return errors.New("invalid profile (use 'baseline', 'main' or 'high')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if math.IsNaN(c.Speed) || c.Speed < SpeedMin || c.Speed > SpeedMax {
		return fmt.Errorf("speed factor %.3g out of range [%g, %g]", c.Speed, SpeedMin, SpeedMax)
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one input file")
	}
	if c.OutputDir == "" {
		return errors.New("need an output directory (-o)")
	}
	return nil
}

// ParseSpeed parses a user-supplied speed value. Accepted forms: "2",
// "2.0", "2x", "1.25X". The value is not range-checked here; Validate
// enforces the bounds.
func ParseSpeed(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSuffix(s, "x")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid speed %q (use e.g. 1.5 or 2x)", raw)
	}
	return v, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
