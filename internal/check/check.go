// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation for ffmpeg, ffprobe, libx264, AAC, and the
// anullsrc silence generator.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/slidecast/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder
// is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrX264Missing     = errors.New("libx264 test encode failed (encoder missing from ffmpeg build?)")
	ErrAACMissing      = errors.New("AAC encoder test failed")
)

// Logger is the minimal logging interface needed by RunCheck. Defined
// here (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: ffmpeg/ffprobe versions,
// the H.264 encoder list, and test encodes for libx264, AAC, and the
// anullsrc source. Informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkVersion(cfg.FFmpegPath, log)
	checkVersion("ffprobe", log)
	checkH264Encoders(cfg, log)
	checkX264(cfg, log)
	checkAAC(cfg, log)
	checkAnullsrc(cfg, log)
}

// checkVersion verifies a tool is resolvable and logs its version line.
func checkVersion(bin string, log Logger) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", bin, firstLine)
}

// checkH264Encoders lists the H.264 encoders reported by ffmpeg.
func checkH264Encoders(cfg *config.Config, log Logger) {
	log.Info("H.264 encoders:")
	out, err := exec.Command(cfg.FFmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "264") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkX264 runs a minimal libx264 encode to verify the video encoder works.
func checkX264(cfg *config.Config, log Logger) {
	log.Info("Testing libx264...")
	if runSilent(cfg.FFmpegPath, x264TestArgs()...) {
		log.Success("libx264 works")
	} else {
		log.Error("libx264 test encode failed")
	}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(cfg *config.Config, log Logger) {
	log.Info("Testing AAC encoder...")
	if runSilent(cfg.FFmpegPath, aacTestArgs()...) {
		log.Success("AAC encoder works")
	} else {
		log.Error("AAC encoder test failed")
	}
}

// checkAnullsrc verifies the silence generator used for audio-less sources.
func checkAnullsrc(cfg *config.Config, log Logger) {
	log.Info("Testing anullsrc silence source...")
	ok := runSilent(cfg.FFmpegPath,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-t", "0.1", "-i", "anullsrc=channel_layout=stereo:sample_rate=48000",
		"-c:a", "aac", "-f", "null", "-",
	)
	if ok {
		log.Success("anullsrc works")
	} else {
		log.Error("anullsrc test failed")
	}
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg and
// ffprobe are on PATH and that the fixed output profile's encoders
// actually work. Returns a sentinel error on the first failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FFmpegPath, x264TestArgs()...) {
		return ErrX264Missing
	}
	if !runSilent(cfg.FFmpegPath, aacTestArgs()...) {
		return ErrAACMissing
	}
	return nil
}

// --- internal helpers ---

// x264TestArgs returns the arguments for a minimal libx264 test encode.
// Shared by checkX264 and CheckDeps to avoid duplicating the list.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-f", "null", "-",
	}
}

// aacTestArgs returns the arguments for a minimal AAC test encode.
func aacTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
