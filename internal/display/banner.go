package display

import (
	"io"

	"github.com/backmassage/autofocus/internal/term"
)

const banner = `              _         __
   __ _ _   _| |_ ___  / _| ___   ___ _   _ ___
  / _` + "`" + ` | | | | __/ _ \| |_ / _ \ / __| | | / __|
 | (_| | |_| | || (_) |  _| (_) | (__| |_| \__ \
  \__,_|\__,_|\__\___/|_|  \___/ \___|\__,_|___/
`

// PrintBanner writes the ASCII art banner to w, magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	term.Magenta.Fprint(w, banner)
}
