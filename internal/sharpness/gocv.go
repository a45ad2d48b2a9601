//go:build gocv

package sharpness

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// GocvBackend names the OpenCV backend.
const GocvBackend = "gocv"

func init() {
	registerBackend(GocvBackend, func() Operators { return gocvOperators{} })
}

// gocvOperators runs each stage through OpenCV: cv::GaussianBlur,
// cv::cvtColor and cv::Laplacian(CV_16S). Both stages replicate edge pixels
// so the two backends agree at the border.
type gocvOperators struct{}

func (gocvOperators) Name() string { return GocvBackend }

func (gocvOperators) GaussianBlur3x3(img image.Image) (image.Image, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.GaussianBlur(src, &dst, image.Pt(3, 3), 0, 0, gocv.BorderReplicate)
	return dst.ToImage()
}

func (gocvOperators) Grayscale(img image.Image) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)

	out, err := dst.ToImage()
	if err != nil {
		return nil, err
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("gocv: expected gray image, got %T", out)
	}
	return gray, nil
}

func (gocvOperators) Laplacian3x3(gray *image.Gray) (*mat.Dense, error) {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Laplacian(src, &dst, gocv.MatTypeCV16S, 3, 1, 0, gocv.BorderReplicate)

	rows, cols := dst.Rows(), dst.Cols()
	if rows == 0 || cols == 0 {
		return nil, errEmptyImage
	}
	data := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			data[y*cols+x] = float64(dst.GetShortAt(y, x))
		}
	}
	return mat.NewDense(rows, cols, data), nil
}
