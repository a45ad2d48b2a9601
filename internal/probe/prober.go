package probe

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Decoders for every format the analyzer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Probe reads the header of the image at path.
func Probe(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	channels, depth := describeModel(cfg.ColorModel)
	return &Result{
		Path:     path,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Channels: channels,
		BitDepth: depth,
	}, nil
}

// describeModel maps a color model to channel count and bits per sample.
// Paletted and YCbCr images decode to 8-bit color.
func describeModel(m color.Model) (channels, depth int) {
	switch m {
	case color.GrayModel:
		return 1, 8
	case color.Gray16Model:
		return 1, 16
	case color.RGBAModel, color.NRGBAModel:
		return 4, 8
	case color.RGBA64Model, color.NRGBA64Model:
		return 4, 16
	case color.YCbCrModel:
		return 3, 8
	case color.NYCbCrAModel, color.CMYKModel:
		return 4, 8
	}
	if _, ok := m.(color.Palette); ok {
		return 3, 8
	}
	return 0, 0
}
