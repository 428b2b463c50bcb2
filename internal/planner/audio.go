package planner

import (
	"math"
	"strings"
)

// A single atempo stage only supports ratios in [0.5, 2.0]. Larger or
// smaller speed factors are reached by chaining stages whose ratios
// multiply to the target.
const (
	atempoStageMin = 0.5
	atempoStageMax = 2.0
)

// loudnormFilter is the EBU R128 loudness normalization stage
// (-16 LUFS integrated, -1.5 dBTP ceiling).
const loudnormFilter = "loudnorm=I=-16:TP=-1.5:LRA=11"

// TempoStages decomposes a speed factor into chained atempo ratios, each
// within the filter's supported band, whose product equals speed. Factors
// indistinguishable from 1.0 yield no stages. The residual stage is
// rounded to 3 decimals to suppress float noise; the product therefore
// matches speed only within that tolerance.
func TempoStages(speed float64) []float64 {
	if speed <= 0 {
		speed = 1.0
	}

	var stages []float64
	remaining := speed
	for remaining > atempoStageMax {
		stages = append(stages, atempoStageMax)
		remaining /= atempoStageMax
	}
	for remaining < atempoStageMin {
		stages = append(stages, atempoStageMin)
		remaining /= atempoStageMin
	}

	remaining = math.Round(remaining*1000) / 1000
	if math.Abs(remaining-1.0) > 1e-3 {
		stages = append(stages, remaining)
	}
	return stages
}

// BuildAudioFilter constructs the comma-joined -filter:a chain: tempo
// stages matching the video speed, then optional loudness normalization.
// Returns an empty string when neither applies.
func BuildAudioFilter(speed float64, normalize bool) string {
	var filters []string
	for _, stage := range TempoStages(speed) {
		filters = append(filters, "atempo="+formatRatio(stage))
	}
	if normalize {
		filters = append(filters, loudnormFilter)
	}
	return strings.Join(filters, ",")
}
