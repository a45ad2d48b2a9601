package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/backmassage/autofocus/internal/errs"
)

// errNotDigits is the parse cause for a field holding anything but 0-9.
var errNotDigits = errors.New("frame number field is not all decimal digits")

// ParseFrameNumber extracts the frame ordinal from a name of the form
// <prefix><digits><extension>, e.g. "frame00042.png" with digits=5 → 42.
//
// name may be a bare file name or a path; only the base name is inspected.
// The field is the digits characters immediately before the extension and
// must consist solely of ASCII decimal digits. Leading zeros only pad the
// width. A name with no room for the field fails with an
// [errs.KindInvalidFileName] error; a malformed field fails with
// [errs.KindFrameNumberParse]. Both errors name the argument as given.
func ParseFrameNumber(name string, digits int) (uint64, error) {
	if digits < 1 {
		return 0, errs.FrameNumberParse(name, fmt.Errorf("invalid frame number width %d", digits))
	}

	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if len(base) <= len(ext)+digits {
		return 0, errs.InvalidFileName(name)
	}

	end := len(base) - len(ext)
	field := base[end-digits : end]
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, errs.FrameNumberParse(name, errNotDigits)
		}
	}

	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, errs.FrameNumberParse(name, err)
	}
	return n, nil
}

// FrameName builds a name that ParseFrameNumber accepts with the same width,
// matching ffmpeg's "<prefix>%0Nd<ext>" output pattern.
func FrameName(prefix string, n uint64, digits int, ext string) string {
	return fmt.Sprintf("%s%0*d%s", prefix, digits, n, ext)
}
