// Package ffmpeg renders a planner FilePlan into an ffmpeg command line,
// runs it, and turns the process's progress stream and exit status into
// typed events and errors.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for a file,
// including the binary name at index 0. The command always produces the
// same output shape: H.264 yuv420p CFR 30fps video with a faststart MP4
// container and a 48 kHz stereo AAC track, silent if the source has none.
func Build(cfg *config.Config, plan *planner.FilePlan) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-hide_banner", "-nostdin", "-y")

	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// Machine-readable progress on stdout; stderr stays errors-only.
	args = append(args, "-progress", "pipe:1", "-nostats")

	// --- Inputs ---
	args = append(args, "-i", plan.InputPath)
	if plan.InjectSilence {
		// A generated silent track, overlong on purpose; -shortest trims
		// it to the video.
		args = append(args,
			"-f", "lavfi",
			"-t", "99999",
			"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", planner.AudioSampleRate),
		)
	}

	// --- Stream maps ---
	if plan.InjectSilence {
		args = append(args, "-map", "0:v:0", "-map", "1:a:0")
	} else {
		args = append(args, "-map", "0:v:0", "-map", "0:a:0")
	}

	// PowerPoint chokes on stray metadata (rotation tags especially).
	args = append(args, "-map_metadata", "-1")

	// --- Video filter chain ---
	args = append(args, "-vf", plan.VideoFilters)

	// --- Video codec ---
	args = append(args,
		"-c:v", planner.VideoCodec,
		"-profile:v", plan.Profile.Name,
		"-level", plan.Profile.Level,
		"-preset", plan.Profile.Preset,
		"-crf", plan.Profile.CRF,
		"-pix_fmt", planner.PixelFormat,
	)

	// --- Frame timing ---
	args = append(args, "-vsync", "vfr", "-r", strconv.Itoa(planner.FrameRate))

	// --- Audio codec ---
	args = append(args,
		"-c:a", planner.AudioCodec,
		"-b:a", planner.AudioBitrate,
		"-ar", strconv.Itoa(planner.AudioSampleRate),
		"-ac", strconv.Itoa(planner.AudioChannels),
	)
	if plan.AudioFilters != "" {
		args = append(args, "-filter:a", plan.AudioFilters)
	}
	if plan.InjectSilence {
		args = append(args, "-shortest")
	}

	// --- Container ---
	args = append(args, "-movflags", "+faststart")

	// --- Output ---
	args = append(args, plan.OutputPath)

	return args
}
