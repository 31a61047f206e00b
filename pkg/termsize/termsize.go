// Package termsize discovers the size of a terminal by asking it. It sends
// the text area size report request (CSI 18 t), parses the
// CSI 8 ; rows ; cols t reply and passes the result on to the terminal
// driver. This works where the driver's own window size is missing or wrong,
// for example on serial consoles.
package termsize

import (
	"dominicbreuker/tsize/pkg/rawterm"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

var (
	// ErrUnexpectedByte reports a byte that does not fit the reply format.
	ErrUnexpectedByte = errors.New("unexpected byte")
	// ErrMalformedReply reports a reply that ended before its size fields
	// were complete.
	ErrMalformedReply = errors.New("malformed size reply")
)

// Size is the addressable area of a terminal, excluding status lines.
type Size struct {
	Rows int
	Cols int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Terminal is the channel a size query runs over. ReadByte must bound its
// wait; *rawterm.Session implements it.
type Terminal interface {
	io.Writer
	io.ByteReader
	Drain() error
	SetWinsize(rows, cols int) error
}

// Query asks t for its size and, on success, stores the size in the
// terminal driver. A single unexpected or late byte fails the query; there
// are no retries and no partial results. A failure to store the size is
// not reported.
func Query(t Terminal) (Size, error) {
	if _, err := t.Write([]byte(query)); err != nil {
		return Size{}, fmt.Errorf("sending size query: %w", err)
	}
	if err := t.Drain(); err != nil {
		return Size{}, fmt.Errorf("sending size query: %w", err)
	}

	if err := expectCSI(t); err != nil {
		return Size{}, err
	}
	if err := expect(t, replyPrefix); err != nil {
		return Size{}, err
	}

	size, err := parseSize(t)
	if err != nil {
		return Size{}, err
	}

	_ = t.SetWinsize(size.Rows, size.Cols)

	return size, nil
}

// QueryFile runs Query on f inside a raw session that is always closed
// before returning. timeout bounds each byte read.
func QueryFile(f *os.File, timeout time.Duration) (size Size, err error) {
	err = rawterm.With(f, timeout, func(s *rawterm.Session) error {
		size, err = Query(s)
		return err
	})
	if err != nil {
		return Size{}, err
	}
	return size, nil
}
