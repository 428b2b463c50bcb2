package ffmpeg

import (
	"testing"
	"time"
)

func feedAll(t *testing.T, lines []string) []ProgressEvent {
	t.Helper()
	var parser progressParser
	var events []ProgressEvent
	for _, line := range lines {
		if ev, ok := parser.Feed(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

func TestProgressParser_Blocks(t *testing.T) {
	events := feedAll(t, []string{
		"frame=120",
		"fps=60.1",
		"out_time_us=4000000",
		"out_time=00:00:04.000000",
		"speed=2.01x",
		"progress=continue",
		"frame=240",
		"out_time_us=8000000",
		"speed=1.98x",
		"progress=end",
	})

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].OutTime != 4*time.Second || events[0].Done {
		t.Errorf("first event: %+v", events[0])
	}
	if events[0].Speed != 2.01 {
		t.Errorf("first speed: %v", events[0].Speed)
	}
	if events[1].OutTime != 8*time.Second || !events[1].Done {
		t.Errorf("final event: %+v", events[1])
	}
}

func TestProgressParser_PrefersMicrosecondField(t *testing.T) {
	// out_time_ms is microseconds in disguise; only out_time_us and the
	// clock string are trusted, us first.
	events := feedAll(t, []string{
		"out_time=00:00:09.000000",
		"out_time_us=5000000",
		"out_time_ms=5000000",
		"progress=continue",
	})
	if len(events) != 1 || events[0].OutTime != 5*time.Second {
		t.Fatalf("events: %+v", events)
	}
}

func TestProgressParser_ClockFallback(t *testing.T) {
	events := feedAll(t, []string{
		"out_time=01:02:03.500000",
		"progress=continue",
	})
	want := time.Hour + 2*time.Minute + 3*time.Second + 500*time.Millisecond
	if len(events) != 1 || events[0].OutTime != want {
		t.Fatalf("events: %+v, want OutTime %v", events, want)
	}
}

func TestProgressParser_ResetsBetweenBlocks(t *testing.T) {
	events := feedAll(t, []string{
		"out_time_us=3000000",
		"progress=continue",
		// Second block carries only the clock string; the us value from
		// block one must not leak through.
		"out_time=00:00:06.000000",
		"progress=continue",
	})
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[1].OutTime != 6*time.Second {
		t.Errorf("second block OutTime = %v, want 6s", events[1].OutTime)
	}
}

func TestProgressParser_IgnoresGarbage(t *testing.T) {
	events := feedAll(t, []string{
		"not a key value line",
		"out_time_us=banana",
		"out_time=-00:00:01.000000",
		"speed=N/A",
		"progress=continue",
	})
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].OutTime != 0 || events[0].Speed != 0 {
		t.Errorf("garbage leaked into event: %+v", events[0])
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"00:00:00.000000", 0, false},
		{"00:01:30.250000", 90*time.Second + 250*time.Millisecond, false},
		{"10:00:00.000000", 10 * time.Hour, false},
		{"00:00", 0, true},
		{"aa:bb:cc", 0, true},
		{"-00:00:05.000000", 0, true},
	}
	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q): want error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseClock(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}
