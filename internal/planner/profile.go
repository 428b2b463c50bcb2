package planner

// H.264 profile presets. Baseline trades quality for the widest decoder
// support (old Office builds, hardware decoders); High assumes a modern
// player.
var profileTable = map[string]ProfileParams{
	"baseline": {Name: "baseline", Level: "3.1", Preset: "veryfast", CRF: "20"},
	"main":     {Name: "main", Level: "4.0", Preset: "faster", CRF: "20"},
	"high":     {Name: "high", Level: "4.1", Preset: "fast", CRF: "18"},
}

// ProfileFor returns the encoder parameters for a profile name, falling
// back to baseline for anything unrecognized (config validation should
// have rejected it already).
func ProfileFor(name string) ProfileParams {
	if p, ok := profileTable[name]; ok {
		return p
	}
	return profileTable["baseline"]
}
