package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Speed != 1.0 {
		t.Errorf("Speed: got %v, want 1.0", cfg.Speed)
	}
	if cfg.Profile != ProfileBaseline {
		t.Errorf("Profile: got %q, want baseline", cfg.Profile)
	}
	if !cfg.Overwrite {
		t.Error("Overwrite: got false, want true")
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath: got %q, want ffmpeg", cfg.FFmpegPath)
	}
}

func TestValidate_SpeedBounds(t *testing.T) {
	cases := []struct {
		speed float64
		ok    bool
	}{
		{1.0, true},
		{0.1, true},
		{100.0, true},
		{0.099, false},
		{100.5, false},
		{0, false},
		{-2, false},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.Inputs = []string{"a.mov"}
		cfg.OutputDir = "/tmp/out"
		cfg.Speed = tc.speed
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("speed %v: unexpected error %v", tc.speed, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("speed %v: expected error, got nil", tc.speed)
		}
	}
}

func TestValidate_RequiresInputsAndOutput(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing inputs")
	}

	cfg.Inputs = []string{"a.mov"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing output dir")
	}

	cfg.OutputDir = "/tmp/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsPathChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("check-only should not require inputs: %v", err)
	}
}

func TestParseSpeed(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2", 2.0, true},
		{"2x", 2.0, true},
		{"1.25X", 1.25, true},
		{" 0.5x ", 0.5, true},
		{"fast", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSpeed(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseSpeed(%q): got %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseSpeed(%q): expected error", tc.in)
		}
	}
}

func TestParseFlags_Basic(t *testing.T) {
	cfg := DefaultConfig()
	err := parseFlags(&cfg, []string{
		"-s", "2x", "--profile", "high", "-n", "--no-overwrite",
		"-o", "/tmp/out/", "a.mov", "b.mkv",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Speed != 2.0 {
		t.Errorf("Speed: got %v, want 2.0", cfg.Speed)
	}
	if cfg.Profile != ProfileHigh {
		t.Errorf("Profile: got %q, want high", cfg.Profile)
	}
	if !cfg.NormalizeAudio {
		t.Error("NormalizeAudio: got false, want true")
	}
	if cfg.Overwrite {
		t.Error("Overwrite: got true, want false")
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir: got %q (trailing slash should be stripped)", cfg.OutputDir)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[0] != "a.mov" {
		t.Errorf("Inputs: got %v", cfg.Inputs)
	}
}

func TestParseFlags_InvalidProfile(t *testing.T) {
	cfg := DefaultConfig()
	err := parseFlags(&cfg, []string{"--profile", "ultra", "-o", "x", "a.mov"})
	if err == nil || !strings.Contains(err.Error(), "invalid profile") {
		t.Errorf("expected invalid profile error, got %v", err)
	}
}

func TestParseFlags_ColorPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	if err := parseFlags(&cfg, []string{"--color", "--no-color", "-o", "x", "a.mov"}); err != nil {
		t.Fatal(err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("--no-color should win, got %q", cfg.ColorMode)
	}
}

func TestMergeFile_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidecast.yaml")
	content := "speed: 3x\nprofile: main\nnormalize: true\noutput_dir: /from/file\noverwrite: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	err := parseFlags(&cfg, []string{"--config", path, "-s", "2", "-o", "/from/cli", "a.mov"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.Speed != 2.0 {
		t.Errorf("Speed: CLI should win, got %v", cfg.Speed)
	}
	if cfg.OutputDir != "/from/cli" {
		t.Errorf("OutputDir: CLI should win, got %q", cfg.OutputDir)
	}
	// Values not set on the CLI come from the file.
	if cfg.Profile != ProfileMain {
		t.Errorf("Profile: got %q, want main (from file)", cfg.Profile)
	}
	if !cfg.NormalizeAudio {
		t.Error("NormalizeAudio: want true (from file)")
	}
	if cfg.Overwrite {
		t.Error("Overwrite: want false (from file)")
	}
}

func TestMergeFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("speed: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := parseFlags(&cfg, []string{"--config", path, "-o", "x", "a.mov"}); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SLIDECAST_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("SLIDECAST_LOG", "/tmp/slidecast.log")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath: got %q", cfg.FFmpegPath)
	}
	if cfg.LogFile != "/tmp/slidecast.log" {
		t.Errorf("LogFile: got %q", cfg.LogFile)
	}
}

func TestNormalizeDirArg(t *testing.T) {
	cases := map[string]string{
		"/a/b/":  "/a/b",
		"/a/b//": "/a/b",
		"/":      "/",
		"rel":    "rel",
	}
	for in, want := range cases {
		if got := NormalizeDirArg(in); got != want {
			t.Errorf("NormalizeDirArg(%q): got %q, want %q", in, got, want)
		}
	}
}
