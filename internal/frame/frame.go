// Package frame holds the per-frame analysis result and its ordering rules.
package frame

import (
	"cmp"
	"slices"
)

// Info is the analysis result for one frame image.
type Info struct {
	Number    uint64  // Ordinal parsed from the file name.
	Sharpness float64 // Higher is sharper.
	Path      string  // Source file; informational only, never used for ordering.
}

// SortByNumber orders frames by Number ascending. Frames sharing a number keep
// their relative order.
func SortByNumber(frames []Info) {
	slices.SortStableFunc(frames, func(a, b Info) int {
		return cmp.Compare(a.Number, b.Number)
	})
}

// IsSorted reports whether frames are in non-decreasing Number order.
func IsSorted(frames []Info) bool {
	return slices.IsSortedFunc(frames, func(a, b Info) int {
		return cmp.Compare(a.Number, b.Number)
	})
}
