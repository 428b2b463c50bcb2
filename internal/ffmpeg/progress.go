package ffmpeg

import (
	"strconv"
	"strings"
	"time"
)

// ProgressEvent is one block of ffmpeg -progress output: the media
// timestamp written so far, the realtime speed multiplier, and whether
// this was the final ("progress=end") block.
type ProgressEvent struct {
	OutTime time.Duration
	Speed   float64
	Done    bool
}

// progressParser accumulates the key=value lines that ffmpeg writes to
// -progress pipe:1. Each block ends with a "progress=continue" or
// "progress=end" line, at which point Feed reports a complete event.
//
// out_time_us is preferred for the timestamp. out_time_ms is ignored:
// despite the name it also carries microseconds, and trusting it doubles
// the confusion. The clock-style out_time string is the fallback for
// builds that omit the numeric fields.
type progressParser struct {
	cur     ProgressEvent
	hasTime bool
}

// Feed consumes one line of progress output. ok is true when the line
// completed a block.
func (p *progressParser) Feed(line string) (ev ProgressEvent, ok bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return ProgressEvent{}, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case "out_time_us":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
			p.cur.OutTime = time.Duration(us) * time.Microsecond
			p.hasTime = true
		}

	case "out_time":
		if !p.hasTime {
			if d, err := parseClock(value); err == nil {
				p.cur.OutTime = d
			}
		}

	case "speed":
		if sp, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			p.cur.Speed = sp
		}

	case "progress":
		p.cur.Done = value == "end"
		ev, ok = p.cur, true
		p.cur = ProgressEvent{}
		p.hasTime = false
	}
	return ev, ok
}

// parseClock parses ffmpeg's HH:MM:SS.micros timestamp format. Negative
// timestamps (seen briefly at encode start) are rejected.
func parseClock(s string) (time.Duration, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return 0, strconv.ErrSyntax
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, err
	}
	if h < 0 || m < 0 || sec < 0 {
		return 0, strconv.ErrRange
	}

	d := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec*float64(time.Second))
	return d, nil
}
