package probe

import "strconv"

// Result is the header information of one image file.
type Result struct {
	Path     string
	Format   string // Registered decoder name: "png", "jpeg", "webp", ...
	Width    int
	Height   int
	Channels int // 1 gray, 3 color, 4 color with alpha; 0 when unknown.
	BitDepth int // Bits per sample: 8 or 16; 0 when unknown.
}

// Resolution returns "WxH", or "unknown" for empty dimensions.
func (r *Result) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}

// IsHighBitDepth reports whether samples are wider than 8 bits.
func (r *Result) IsHighBitDepth() bool {
	return r.BitDepth > 8
}

// SameGeometry reports whether r and o have identical dimensions.
func (r *Result) SameGeometry(o *Result) bool {
	return r.Width == o.Width && r.Height == o.Height
}
