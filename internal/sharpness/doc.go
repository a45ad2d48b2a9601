// Package sharpness scores how sharp a still image is.
//
// The score is fixed: a 3×3 Gaussian blur to suppress noise, conversion to
// BT.601 grayscale, a 3×3 aperture Laplacian (kernel [[2,0,2],[0,-8,0],[2,0,2]])
// with border replication into a signed 16-bit response, and finally the
// largest response value. Only the positive peak counts; strong negative
// responses are ignored.
//
// The numeric stages sit behind [Operators] so the backend can change
// without changing the algorithm. The default backend is pure Go (bild +
// gonum). Building with -tags gocv adds an OpenCV backend named "gocv".
package sharpness
