package planner

// Fixed output recipe. The point of the tool is that these never vary:
// PowerPoint's embedded player wants H.264/yuv420p at a constant frame
// rate with the moov atom up front and an AAC track present.
const (
	VideoCodec      = "libx264"
	PixelFormat     = "yuv420p"
	FrameRate       = 30
	AudioCodec      = "aac"
	AudioBitrate    = "128k"
	AudioSampleRate = 48000
	AudioChannels   = 2
)

// FilePlan holds the complete set of decisions for converting a single
// source file. It is produced by BuildPlan and consumed by the ffmpeg
// package to construct command arguments.
type FilePlan struct {
	InputPath  string
	OutputPath string

	// Video encoding.
	VideoFilters string // comma-joined -vf chain (never empty; scale+fps at minimum)
	Profile      ProfileParams

	// Audio.
	InjectSilence bool      // Source has no audio; add an anullsrc input and -shortest.
	AudioFilters  string    // comma-joined -filter:a chain (empty when none needed)
	TempoStages   []float64 // atempo stage ratios; product equals the speed factor

	// Speed factor the plan was built for (1.0 = realtime).
	Speed float64
}

// ProfileParams bundles the H.264 profile with its level, x264 preset,
// and CRF. See the profile table in profile.go.
type ProfileParams struct {
	Name   string
	Level  string
	Preset string
	CRF    string
}
