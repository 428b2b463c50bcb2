package ffmpeg

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrToolNotFound means the ffmpeg binary is not on PATH (or the
// configured path does not exist).
var ErrToolNotFound = errors.New("ffmpeg binary not found")

// ErrCancelled means the encode was killed by context cancellation
// rather than failing on its own.
var ErrCancelled = errors.New("encode cancelled")

// EncodeError is a non-zero ffmpeg exit. Reason is a short classified
// label from the stderr tail; Stderr holds the tail itself for the log.
type EncodeError struct {
	ExitCode int
	Reason   string
	Stderr   string
}

func (e *EncodeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, e.Reason)
	}
	return fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
}

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by [ClassifyStderr]; the first match wins.
var (
	reNoSpace = regexp.MustCompile(`No space left on device`)

	rePermission = regexp.MustCompile(`Permission denied`)

	reInvalidInput = regexp.MustCompile(
		`Invalid data found when processing input|` +
			`moov atom not found|` +
			`could not find codec parameters|` +
			`Invalid argument`)

	reEncoderMissing = regexp.MustCompile(
		`Unknown encoder|` +
			`Encoder not found|` +
			`is not compiled into this build`)

	reFilterMissing = regexp.MustCompile(
		`No such filter|Error initializing filter`)
)

// ClassifyStderr maps an ffmpeg stderr tail to a short human-readable
// reason. Returns "" when no known pattern matches.
func ClassifyStderr(stderr string) string {
	switch {
	case reNoSpace.MatchString(stderr):
		return "no space left on device"
	case rePermission.MatchString(stderr):
		return "permission denied"
	case reEncoderMissing.MatchString(stderr):
		return "encoder missing from ffmpeg build"
	case reFilterMissing.MatchString(stderr):
		return "filter missing from ffmpeg build"
	case reInvalidInput.MatchString(stderr):
		return "invalid or corrupt input"
	}
	return ""
}
