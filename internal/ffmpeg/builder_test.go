package ffmpeg

import (
	"strings"
	"testing"

	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/planner"
)

func testPlan(silent bool) *planner.FilePlan {
	plan := &planner.FilePlan{
		InputPath:    "/in/deck.mov",
		OutputPath:   "/out/deck_ppt.mp4",
		Speed:        1.0,
		Profile:      planner.ProfileFor("baseline"),
		VideoFilters: "scale=trunc(iw/2)*2:trunc(ih/2)*2,fps=30",
	}
	if silent {
		plan.InjectSilence = true
	} else {
		plan.AudioFilters = "loudnorm=I=-16:TP=-1.5:LRA=11"
	}
	return plan
}

// argPairs collects flag→value pairs for single-value flags.
func argPairs(args []string) map[string]string {
	pairs := make(map[string]string)
	for i := 0; i < len(args)-1; i++ {
		if strings.HasPrefix(args[i], "-") {
			pairs[args[i]] = args[i+1]
		}
	}
	return pairs
}

func TestBuild_CoreShape(t *testing.T) {
	cfg := config.DefaultConfig()
	args := Build(&cfg, testPlan(false))

	if args[0] != "ffmpeg" {
		t.Errorf("args[0] = %q, want ffmpeg", args[0])
	}
	if args[len(args)-1] != "/out/deck_ppt.mp4" {
		t.Errorf("last arg = %q, want output path", args[len(args)-1])
	}

	pairs := argPairs(args)
	wantPairs := map[string]string{
		"-c:v":       "libx264",
		"-profile:v": "baseline",
		"-level":     "3.1",
		"-preset":    "veryfast",
		"-crf":       "20",
		"-pix_fmt":   "yuv420p",
		"-r":         "30",
		"-c:a":       "aac",
		"-b:a":       "128k",
		"-ar":        "48000",
		"-ac":        "2",
		"-movflags":  "+faststart",
		"-loglevel":  "error",
		"-progress":  "pipe:1",
		"-vsync":     "vfr",
	}
	for flag, want := range wantPairs {
		if got := pairs[flag]; got != want {
			t.Errorf("%s = %q, want %q", flag, got, want)
		}
	}

	if pairs["-map_metadata"] != "-1" {
		t.Errorf("-map_metadata = %q, want -1", pairs["-map_metadata"])
	}
	if pairs["-filter:a"] == "" {
		t.Error("-filter:a missing")
	}
}

func TestBuild_SilentInjection(t *testing.T) {
	cfg := config.DefaultConfig()
	args := Build(&cfg, testPlan(true))
	joined := strings.Join(args, " ")

	wantFragments := []string{
		"-f lavfi",
		"-t 99999",
		"anullsrc=channel_layout=stereo:sample_rate=48000",
		"-map 0:v:0 -map 1:a:0",
		"-shortest",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(joined, frag) {
			t.Errorf("missing %q in: %s", frag, joined)
		}
	}
	if strings.Contains(joined, "-filter:a") {
		t.Errorf("silent path must not carry audio filters: %s", joined)
	}
}

func TestBuild_AudioSourceMapsItself(t *testing.T) {
	cfg := config.DefaultConfig()
	joined := strings.Join(Build(&cfg, testPlan(false)), " ")
	if !strings.Contains(joined, "-map 0:v:0 -map 0:a:0") {
		t.Errorf("want first-stream maps, got: %s", joined)
	}
	if strings.Contains(joined, "anullsrc") {
		t.Errorf("audio source must not inject silence: %s", joined)
	}
}

func TestBuild_VerboseLoglevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Verbose = true
	pairs := argPairs(Build(&cfg, testPlan(false)))
	if pairs["-loglevel"] != "info" {
		t.Errorf("-loglevel = %q, want info", pairs["-loglevel"])
	}
}

func TestBuild_CustomBinary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"
	args := Build(&cfg, testPlan(false))
	if args[0] != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("args[0] = %q", args[0])
	}
}
