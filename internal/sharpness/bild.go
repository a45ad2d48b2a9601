package sharpness

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"gonum.org/v1/gonum/mat"
)

// BT.601 luma weights, as used by OpenCV's BGR2GRAY.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// bildOperators is the pure-Go backend: bild for blur and gray conversion,
// gonum for the signed Laplacian response.
type bildOperators struct{}

func (bildOperators) Name() string { return DefaultBackend }

// GaussianBlur3x3 convolves with the 1-2-1 binomial kernel. bild clamps
// out-of-range indices to the edge when Wrap is false. bild truncates when
// storing 8-bit samples; the 0.5 bias makes that round half up, the same
// as OpenCV's fixed-point result for this kernel.
func (bildOperators) GaussianBlur3x3(img image.Image) (image.Image, error) {
	return convolution.Convolve(img, gaussianKernel3x3(), &convolution.Options{
		Bias:      0.5,
		Wrap:      false,
		KeepAlpha: true,
	}), nil
}

// Grayscale keeps one channel of bild's gray RGBA output.
func (bildOperators) Grayscale(img image.Image) (*image.Gray, error) {
	rgba := effect.GrayscaleWithWeights(img, lumaR, lumaG, lumaB)
	b := rgba.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
		dst := gray.Pix[gray.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = src[4*x]
		}
	}
	return gray, nil
}

func (bildOperators) Laplacian3x3(gray *image.Gray) (*mat.Dense, error) {
	return laplacian3x3(gray)
}

// gaussianKernel3x3 is the outer product of [1 2 1]/4 with itself. For an
// aperture of 3 the size-derived sigma (0.8) resolves to exactly this table.
func gaussianKernel3x3() *convolution.Kernel {
	weights := [9]float64{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	}
	k := convolution.NewKernel(3, 3)
	for i, w := range weights {
		k.Matrix[i] = w / 16
	}
	return k
}
