// Package naming derives output file paths from source paths: the _ppt
// suffix convention plus collision handling for batches whose sources
// share a base name.
package naming

import (
	"path/filepath"
	"strings"
)

// OutputSuffix marks converted files; "deck.mov" becomes "deck_ppt.mp4".
const OutputSuffix = "_ppt"

// OutputContainer is the only container the converter writes.
const OutputContainer = ".mp4"

// OutputPath builds the canonical output path for a source file:
// <outputDir>/<stem>_ppt.mp4. The source's own extension is dropped, so
// "intro.mov" and "intro.avi" map to the same output (the collision
// resolver separates them).
func OutputPath(sourcePath, outputDir string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+OutputSuffix+OutputContainer)
}
