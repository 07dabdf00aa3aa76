// Package draw renders to ANSI terminals: a half-block pixel canvas with
// logical-to-terminal scaling, and a chunked writer for text overlays.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// ANSI colors used by overlays.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorRed         = "\033[31m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightWhite = "\033[97m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
