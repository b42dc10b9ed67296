package generator

import (
	"strings"

	"github.com/teranos/atlas/classinfo"
)

// AnalyzeWarnings inspects one ClassInfo for redundant requests. Warnings
// never affect generation or the exit code.
func AnalyzeWarnings(ci *classinfo.ClassInfo) []string {
	if !ci.Opts.Spaceship || len(ci.Opts.Comparisons) == 0 {
		return nil
	}
	return []string{
		ci.FullQualifiedName + ": operator<=> already provides the explicitly requested " +
			strings.Join(ci.Opts.Comparisons, ", "),
	}
}
