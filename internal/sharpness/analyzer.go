package sharpness

import (
	"fmt"
	"image"

	// Extra decoders beyond what imaging registers (PNG, JPEG, GIF, BMP, TIFF).
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"

	"github.com/backmassage/autofocus/internal/errs"
)

// Analyzer computes sharpness scores with a fixed algorithm over a chosen
// backend. It holds no mutable state and is safe for concurrent use as long
// as the backend is.
type Analyzer struct {
	ops Operators
}

// NewAnalyzer returns an Analyzer over ops. A nil ops selects
// [DefaultOperators].
func NewAnalyzer(ops Operators) *Analyzer {
	if ops == nil {
		ops = DefaultOperators()
	}
	return &Analyzer{ops: ops}
}

// Backend returns the name of the operator backend in use.
func (a *Analyzer) Backend() string {
	return a.ops.Name()
}

// Score decodes the image at path and returns its sharpness.
func (a *Analyzer) Score(path string) (float64, error) {
	img, err := Decode(path)
	if err != nil {
		return 0, err
	}
	score, err := a.ScoreImage(img)
	if err != nil {
		return 0, fmt.Errorf("scoring '%s': %w", path, err)
	}
	return score, nil
}

// ScoreImage returns the sharpness of an already decoded image: the largest
// Laplacian response after blur and gray conversion.
func (a *Analyzer) ScoreImage(img image.Image) (float64, error) {
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return 0, errs.ImageDecode("", errEmptyImage)
	}

	blurred, err := a.ops.GaussianBlur3x3(opaque(img))
	if err != nil {
		return 0, fmt.Errorf("%s blur: %w", a.ops.Name(), err)
	}
	gray, err := a.ops.Grayscale(blurred)
	if err != nil {
		return 0, fmt.Errorf("%s grayscale: %w", a.ops.Name(), err)
	}
	response, err := a.ops.Laplacian3x3(gray)
	if err != nil {
		return 0, fmt.Errorf("%s laplacian: %w", a.ops.Name(), err)
	}
	return mat.Max(response), nil
}

// opaque returns a non-premultiplied copy of img with alpha forced to 255.
// Transparent pixels are scored on their stored color.
func opaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// Decode reads an image file, applying any EXIF orientation. Unreadable or
// empty images fail with an [errs.KindImageDecode] error naming path.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.ImageDecode(path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errs.ImageDecode(path, errEmptyImage)
	}
	return img, nil
}
