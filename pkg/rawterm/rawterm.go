// Package rawterm puts a terminal device into raw mode for the duration of a
// session and provides timed single-byte reads on it. The line-discipline
// configuration found when the session is opened is saved before anything is
// changed, and it is the only state written back when the session is closed.
package rawterm

import (
	"dominicbreuker/tsize/pkg/winsize"
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultTimeout bounds each byte read on a session opened with Open.
const DefaultTimeout = 1 * time.Second

var (
	ErrNotATerminal = errors.New("not a terminal")
	ErrGetTermios   = errors.New("reading terminal attributes")
	ErrSetTermios   = errors.New("applying terminal attributes")
	ErrTimeout      = errors.New("timed out waiting for input")
	ErrRead         = errors.New("reading from terminal")
	ErrWrite        = errors.New("writing to terminal")
	ErrClosed       = errors.New("session closed")
)

// Session owns the raw-mode state of one terminal device. It is not safe for
// concurrent use.
type Session struct {
	f       *os.File
	fd      int
	saved   termios
	timeout time.Duration
	closed  bool
}

// Open switches f into raw mode with DefaultTimeout per byte read.
func Open(f *os.File) (*Session, error) {
	return OpenWithTimeout(f, DefaultTimeout)
}

// OpenWithTimeout switches f into raw mode. Each ReadByte call on the
// returned session waits at most timeout for a byte to arrive.
func OpenWithTimeout(f *os.File, timeout time.Duration) (*Session, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout %s", timeout)
	}

	fd := int(f.Fd())
	if !isTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNotATerminal)
	}

	saved, err := getTermios(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGetTermios, err)
	}

	raw := saved
	makeRaw(&raw)
	if err := setTermios(fd, &raw); err != nil {
		// a failed TCSETS may still have applied part of the change
		_ = setTermios(fd, &saved)
		return nil, fmt.Errorf("%w: %w", ErrSetTermios, err)
	}

	return &Session{
		f:       f,
		fd:      fd,
		saved:   saved,
		timeout: timeout,
	}, nil
}

// With opens a session on f, runs fn and closes the session on every exit
// path, including a panic in fn. Restore errors are discarded.
func With(f *os.File, timeout time.Duration, fn func(s *Session) error) error {
	s, err := OpenWithTimeout(f, timeout)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// Timeout returns the per-byte read deadline of the session.
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// ReadByte reads one byte, waiting at most the session timeout.
func (s *Session) ReadByte() (byte, error) {
	return s.ReadByteTimeout(s.timeout)
}

// ReadByteTimeout blocks until one byte is available or timeout elapses.
// It returns an error wrapping ErrTimeout if no byte arrived in time and
// one wrapping ErrRead if waiting or reading failed.
func (s *Session) ReadByteTimeout(timeout time.Duration) (byte, error) {
	if s.closed {
		return 0, ErrClosed
	}

	if err := waitReadable(s.fd, timeout); err != nil {
		return 0, err
	}

	var buf [1]byte
	n, err := readRetry(s.fd, buf[:])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if n != 1 {
		return 0, fmt.Errorf("%w: got %d bytes, want 1", ErrRead, n)
	}
	return buf[0], nil
}

// Write writes p to the terminal. A short write is an error.
func (s *Session) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	n, err := writeRetry(s.fd, p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if n != len(p) {
		return n, fmt.Errorf("%w: wrote %d of %d bytes", ErrWrite, n, len(p))
	}
	return n, nil
}

// Drain waits until all output written to the terminal has been transmitted.
func (s *Session) Drain() error {
	if s.closed {
		return ErrClosed
	}

	if err := drain(s.fd); err != nil {
		return fmt.Errorf("%w: drain: %w", ErrWrite, err)
	}
	return nil
}

// SetWinsize informs the terminal driver of the window size.
func (s *Session) SetWinsize(rows, cols int) error {
	if s.closed {
		return ErrClosed
	}

	return winsize.Set(s.f, winsize.Size{Rows: rows, Cols: cols})
}

// Close restores the line-discipline configuration captured by Open. The
// session is unusable afterwards; further Close calls are no-ops. The
// restore is attempted once and its error is returned for reporting only.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := setTermios(s.fd, &s.saved); err != nil {
		return fmt.Errorf("restoring terminal attributes: %w", err)
	}
	return nil
}
