// Package winsize reads and writes the window-size state the OS terminal
// driver keeps for a terminal device (TIOCGWINSZ / TIOCSWINSZ).
package winsize

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// Size represents the dimensions of a terminal window in rows and columns.
type Size struct {
	Rows int // Number of rows (height) in the terminal
	Cols int // Number of columns (width) in the terminal
}

// Max is the largest row or column count the driver structure can hold.
const Max = 1<<16 - 1

// Get retrieves the window size the driver currently reports for t.
func Get(t *os.File) (Size, error) {
	ws, err := pty.GetsizeFull(t)
	if err != nil {
		return Size{}, fmt.Errorf("TIOCGWINSZ: %w", err)
	}

	return Size{
		Rows: int(ws.Rows),
		Cols: int(ws.Cols),
	}, nil
}

// Set informs the driver of a new window size for t. Pixel dimensions
// are left at zero.
func Set(t *os.File, size Size) error {
	if size.Rows < 0 || size.Rows > Max || size.Cols < 0 || size.Cols > Max {
		return fmt.Errorf("size %dx%d out of range", size.Rows, size.Cols)
	}

	ws := &pty.Winsize{
		Rows: uint16(size.Rows),
		Cols: uint16(size.Cols),
	}
	if err := pty.Setsize(t, ws); err != nil {
		return fmt.Errorf("TIOCSWINSZ: %w", err)
	}
	return nil
}
