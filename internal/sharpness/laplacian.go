package sharpness

import (
	"errors"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errEmptyImage = errors.New("image has zero width or height")

// laplacian3x3 applies the aperture-3 Laplacian
//
//	2  0  2
//	0 -8  0
//	2  0  2
//
// with replicated borders and int16 saturation.
func laplacian3x3(gray *image.Gray) (*mat.Dense, error) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errEmptyImage
	}

	at := func(x, y int) int {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return int(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
	}

	data := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			v := 2*(at(x-1, y-1)+at(x+1, y-1)+at(x-1, y+1)+at(x+1, y+1)) - 8*at(x, y)
			row[x] = float64(saturateInt16(v))
		}
	}
	return mat.NewDense(h, w, data), nil
}

func saturateInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
