// Package planner turns per-job options and probe data into a FilePlan:
// the filter chains, profile parameters, and silent-track decision that
// the ffmpeg argument builder renders into a command line.
package planner

import (
	"github.com/backmassage/slidecast/internal/job"
	"github.com/backmassage/slidecast/internal/probe"
)

// BuildPlan produces a complete FilePlan from job options and probe data.
//
// Flow:
//  1. Resolve the H.264 profile preset
//  2. Build the video filter chain (speed, even dims, CFR)
//  3. Decide silent-track injection from the probe's audio streams
//  4. Build the audio filter chain (tempo stages, loudness)
//
// Silent sources get no audio filters: the injected anullsrc track is
// trimmed to the (already speed-adjusted) video by -shortest, so tempo
// scaling silence would be pointless work.
func BuildPlan(opts job.Options, pr *probe.Result) *FilePlan {
	plan := &FilePlan{
		Speed:        opts.SpeedFactor,
		Profile:      ProfileFor(opts.Profile),
		VideoFilters: BuildVideoFilter(opts.SpeedFactor),
	}

	if !pr.HasAudio() {
		plan.InjectSilence = true
		return plan
	}

	plan.TempoStages = TempoStages(opts.SpeedFactor)
	plan.AudioFilters = BuildAudioFilter(opts.SpeedFactor, opts.NormalizeAudio)
	return plan
}
