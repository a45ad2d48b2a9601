package report

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/backmassage/autofocus/internal/errs"
	"github.com/backmassage/autofocus/internal/frame"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

var errNoFrames = errors.New("no frames to chart")

// WriteChart renders sharpness against frame number to path, marking the
// sharpest frame. The image format follows the extension (.png, .svg, .pdf,
// .jpg, .eps, .tif).
func WriteChart(path string, frames []frame.Info) error {
	if len(frames) == 0 {
		return errs.New(errs.KindOutputWrite, path, "unable to write chart", errNoFrames)
	}
	p, err := newChart(frames)
	if err != nil {
		return errs.New(errs.KindOutputWrite, path, "unable to build chart", err)
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return errs.New(errs.KindOutputWrite, path, "unable to write chart", err)
	}
	return nil
}

func newChart(frames []frame.Info) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Frame sharpness"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Sharpness"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(frames))
	for i, f := range frames {
		pts[i].X = float64(f.Number)
		pts[i].Y = f.Sharpness
	}
	if err := plotutil.AddLinePoints(p, "sharpness", pts); err != nil {
		return nil, err
	}

	best, _ := Best(frames)
	marker, err := plotter.NewScatter(plotter.XYs{{X: float64(best.Number), Y: best.Sharpness}})
	if err != nil {
		return nil, err
	}
	marker.GlyphStyle.Shape = draw.CrossGlyph{}
	marker.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	marker.GlyphStyle.Radius = vg.Points(6)
	p.Add(marker)
	p.Legend.Add("best", marker)
	p.Legend.Top = true
	return p, nil
}
