package pipeline

import (
	"io/fs"
	"strings"

	"github.com/avolkov/metagrid/internal/fsutil"
)

// ExpandOutput substitutes sample into an output path template.
func ExpandOutput(template, sample string) string {
	return strings.ReplaceAll(template, "{sample}", sample)
}

// Complete reports whether every sample has produced every expected output
// under fsys. The filesystem is probed on every call; nothing is cached, so
// outputs deleted between calls are noticed. An empty sample set or an
// empty output list is never complete.
func Complete(fsys fs.FS, outputs []string, samples []string) bool {
	if len(samples) == 0 || len(outputs) == 0 {
		return false
	}
	for _, sample := range samples {
		for _, tmpl := range outputs {
			if !fsutil.Exists(fsys, ExpandOutput(tmpl, sample)) {
				return false
			}
		}
	}
	return true
}

// Missing returns the samples for which at least one expected output does
// not exist under fsys, preserving the order of samples.
func Missing(fsys fs.FS, outputs []string, samples []string) []string {
	var missing []string
	for _, sample := range samples {
		for _, tmpl := range outputs {
			if !fsutil.Exists(fsys, ExpandOutput(tmpl, sample)) {
				missing = append(missing, sample)
				break
			}
		}
	}
	return missing
}
