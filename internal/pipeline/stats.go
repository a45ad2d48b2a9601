package pipeline

import (
	"time"

	"github.com/backmassage/autofocus/internal/frame"
)

// RunStats describes a completed run.
type RunStats struct {
	Frames      int
	OutputBytes int64
	Best        frame.Info // Valid when HasBest.
	HasBest     bool
	Chart       bool          // A chart file was written.
	Analysis    time.Duration // Time spent collecting.
	Elapsed     time.Duration // Whole run.
}
