// Package probe inspects frame image headers without decoding pixels.
//
// A probe reports the container format, dimensions, and sample depth of an
// image. The run logs the geometry of the first frame and warns when frames
// carry more than 8 bits per sample, since scoring works on 8-bit data.
package probe
