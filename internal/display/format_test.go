package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical file 700 MiB", 734003200, "700.0 MiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0s"},
		{"seconds only", 42, "42s"},
		{"minutes", 123, "2m03s"},
		{"hours", 3723, "1h02m03s"},
		{"rounds fractional", 89.6, "1m30s"},
		{"negative clamps", -5, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name          string
		pct           float64
		indeterminate bool
		want          string
	}{
		{"zero", 0, false, "0%"},
		{"mid", 42.4, false, "42%"},
		{"done", 100, false, "100%"},
		{"clamped high", 120, false, "100%"},
		{"clamped low", -3, false, "0%"},
		{"indeterminate", 50, true, "--%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPercent(tt.pct, tt.indeterminate)
			if got != tt.want {
				t.Errorf("FormatPercent(%v, %v) = %q, want %q", tt.pct, tt.indeterminate, got, tt.want)
			}
		})
	}
}
