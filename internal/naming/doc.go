// Package naming extracts frame ordinals from image file names.
//
// Frames are expected to follow the pattern produced by
// `ffmpeg -i <video> frame%05d.png`: any prefix, a fixed-width decimal
// field, then the extension. The field width is configurable.
package naming
