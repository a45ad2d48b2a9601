package sharpness

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Operators are the numeric stages of the sharpness score.
//
// Contract for every backend:
//   - GaussianBlur3x3: 3×3 Gaussian with sigma derived from the aperture
//     (the binomial 1-2-1 kernel), applied per color channel, edge pixels
//     replicated outward.
//   - Grayscale: Y = 0.299 R + 0.587 G + 0.114 B, 8-bit.
//   - Laplacian3x3: aperture-3 Laplacian, scale 1, delta 0, edge pixels
//     replicated, values saturated to the int16 range. The returned matrix
//     has one row per image row.
type Operators interface {
	Name() string
	GaussianBlur3x3(img image.Image) (image.Image, error)
	Grayscale(img image.Image) (*image.Gray, error)
	Laplacian3x3(gray *image.Gray) (*mat.Dense, error)
}

// DefaultBackend names the pure-Go backend.
const DefaultBackend = "bild"

var backends = map[string]func() Operators{
	DefaultBackend: func() Operators { return bildOperators{} },
}

// registerBackend makes a backend selectable by name. Called from init in
// build-tagged backend files.
func registerBackend(name string, newOps func() Operators) {
	backends[name] = newOps
}

// DefaultOperators returns the pure-Go backend.
func DefaultOperators() Operators {
	return bildOperators{}
}

// NewOperators returns the backend registered under name. An empty name
// selects [DefaultBackend].
func NewOperators(name string) (Operators, error) {
	if name == "" {
		name = DefaultBackend
	}
	newOps, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("sharpness backend %q not available (have: %s)", name, strings.Join(Backends(), ", "))
	}
	return newOps(), nil
}

// Backends lists the compiled-in backend names, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
