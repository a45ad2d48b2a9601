package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/backmassage/autofocus/internal/frame"
)

// Summary describes the score distribution of a run.
type Summary struct {
	Count  int
	Best   frame.Info
	Worst  frame.Info
	Mean   float64
	StdDev float64 // Sample standard deviation; 0 with fewer than two frames.
}

// Summarize computes a Summary. ok is false when frames is empty.
func Summarize(frames []frame.Info) (s Summary, ok bool) {
	if len(frames) == 0 {
		return Summary{}, false
	}
	scores := make([]float64, len(frames))
	for i, f := range frames {
		scores[i] = f.Sharpness
	}
	s.Count = len(frames)
	s.Best, _ = Best(frames)
	s.Worst = worst(frames)
	if len(frames) < 2 {
		s.Mean = scores[0]
		return s, true
	}
	s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	return s, true
}

// Best returns the sharpest frame. Ties go to the lowest frame number, then
// to the earliest position.
func Best(frames []frame.Info) (frame.Info, bool) {
	if len(frames) == 0 {
		return frame.Info{}, false
	}
	best := frames[0]
	for _, f := range frames[1:] {
		if f.Sharpness > best.Sharpness || (f.Sharpness == best.Sharpness && f.Number < best.Number) {
			best = f
		}
	}
	return best, true
}

func worst(frames []frame.Info) frame.Info {
	w := frames[0]
	for _, f := range frames[1:] {
		if f.Sharpness < w.Sharpness || (f.Sharpness == w.Sharpness && f.Number < w.Number) {
			w = f
		}
	}
	return w
}
