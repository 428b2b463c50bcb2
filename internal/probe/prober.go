// Package probe inspects source media with a single ffprobe JSON call and
// exposes the two facts the conversion recipe depends on: the container
// duration (for progress percentages) and whether an audio stream exists
// (for silent-track injection).
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// ErrInvalidSource is returned when a source cannot be probed or reports a
// zero duration. It is detected before any encoder process is spawned.
var ErrInvalidSource = errors.New("invalid source (unreadable or zero duration)")

// ErrProbeNotFound is returned when ffprobe is missing from PATH.
var ErrProbeNotFound = errors.New("ffprobe not found on PATH")

const probeTimeout = 30 * time.Second

// Probe runs ffprobe against path and returns the parsed result. A source
// that cannot be read or has no duration yields ErrInvalidSource.
func Probe(ctx context.Context, path string) (*Result, error) {
	// ffprobe is always resolved from PATH: the probe library spawns it
	// by name, so no path override can be honored here.
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, ErrProbeNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := ffmpeggo.ProbeWithTimeout(path, probeTimeout, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSource, path, err)
	}

	r, err := ParseJSON([]byte(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSource, path, err)
	}
	if r.Format.Duration <= 0 {
		return nil, fmt.Errorf("%w: %s: no duration reported", ErrInvalidSource, path)
	}
	return r, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	NbStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index         int            `json:"index"`
	CodecName     string         `json:"codec_name"`
	CodecType     string         `json:"codec_type"`
	PixFmt        string         `json:"pix_fmt"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	AvgFrameRate  string         `json:"avg_frame_rate"`
	Channels      int            `json:"channels"`
	ChannelLayout string         `json:"channel_layout"`
	SampleRate    string         `json:"sample_rate"`
	Disposition   map[string]int `json:"disposition"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *Result {
	r := &Result{
		Format: FormatInfo{
			Filename:   raw.Format.Filename,
			NbStreams:  raw.Format.NbStreams,
			FormatName: raw.Format.FormatName,
			Duration:   parseFloat(raw.Format.Duration),
			Size:       parseInt64(raw.Format.Size),
			BitRate:    parseInt64(raw.Format.BitRate),
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			vs := VideoStream{
				Index:         s.Index,
				Codec:         s.CodecName,
				PixFmt:        s.PixFmt,
				Width:         s.Width,
				Height:        s.Height,
				AvgFrameRate:  s.AvgFrameRate,
				IsAttachedPic: s.Disposition["attached_pic"] == 1,
			}
			if !vs.IsAttachedPic && r.PrimaryVideo == nil {
				r.PrimaryVideo = &vs
			}
		case "audio":
			r.AudioStreams = append(r.AudioStreams, AudioStream{
				Index:         s.Index,
				Codec:         s.CodecName,
				Channels:      s.Channels,
				ChannelLayout: s.ChannelLayout,
				SampleRate:    parseInt(s.SampleRate),
			})
		}
	}
	return r
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
