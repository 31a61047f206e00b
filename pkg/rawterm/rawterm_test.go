//go:build linux || darwin

package rawterm

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func openPty(t *testing.T) (ptm, pts *os.File) {
	t.Helper()

	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("pty.Open(): %s", err)
	}
	t.Cleanup(func() {
		pts.Close()
		ptm.Close()
	})
	return ptm, pts
}

func TestOpen_NotATerminal(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe(): %s", err)
	}
	defer r.Close()
	defer w.Close()

	s, err := Open(r)
	if !errors.Is(err, ErrNotATerminal) {
		t.Fatalf("Open(pipe) error = %v, want %v", err, ErrNotATerminal)
	}
	if s != nil {
		t.Errorf("Open(pipe) returned non-nil session")
	}
}

func TestOpenWithTimeout_InvalidTimeout(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)

	for _, d := range []time.Duration{0, -time.Second} {
		if _, err := OpenWithTimeout(pts, d); err == nil {
			t.Errorf("OpenWithTimeout(%s) succeeded, want error", d)
		}
	}
}

func TestOpen_RawModeAndRestore(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)
	fd := int(pts.Fd())

	before, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}
	if before.Lflag&unix.ICANON == 0 {
		t.Fatalf("fresh pty is not in canonical mode")
	}

	s, err := Open(pts)
	if err != nil {
		t.Fatalf("Open(): %s", err)
	}
	if s.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %s, want %s", s.Timeout(), DefaultTimeout)
	}

	raw, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}

	tests := []struct {
		name string
		set  bool
	}{
		{"ICANON", raw.Lflag&unix.ICANON != 0},
		{"ECHO", raw.Lflag&unix.ECHO != 0},
		{"ISIG", raw.Lflag&unix.ISIG != 0},
		{"IEXTEN", raw.Lflag&unix.IEXTEN != 0},
		{"OPOST", raw.Oflag&unix.OPOST != 0},
		{"ICRNL", raw.Iflag&unix.ICRNL != 0},
		{"IXON", raw.Iflag&unix.IXON != 0},
		{"PARENB", raw.Cflag&unix.PARENB != 0},
	}
	for _, tc := range tests {
		if tc.set {
			t.Errorf("%s still set in raw mode", tc.name)
		}
	}
	if raw.Cflag&unix.CSIZE != unix.CS8 {
		t.Errorf("character size = %#x, want CS8", raw.Cflag&unix.CSIZE)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close(): %s", err)
	}

	after, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}
	if after != before {
		t.Errorf("terminal attributes not restored:\n got %+v\nwant %+v", after, before)
	}
}

func TestReadByte(t *testing.T) {
	t.Parallel()

	ptm, pts := openPty(t)

	s, err := Open(pts)
	if err != nil {
		t.Fatalf("Open(): %s", err)
	}
	defer s.Close()

	want := []byte{0x1b, '[', 0x9b, '\r', 0x03}
	if _, err := ptm.Write(want); err != nil {
		t.Fatalf("ptm.Write(): %s", err)
	}

	for i, w := range want {
		b, err := s.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte() #%d: %s", i, err)
		}
		if b != w {
			t.Errorf("ReadByte() #%d = %#x, want %#x", i, b, w)
		}
	}
}

func TestReadByteTimeout(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)

	s, err := OpenWithTimeout(pts, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("OpenWithTimeout(): %s", err)
	}
	defer s.Close()

	start := time.Now()
	_, err = s.ReadByte()
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("ReadByte() error = %v, want %v", err, ErrTimeout)
	}
	if elapsed < 40*time.Millisecond {
		t.Errorf("ReadByte() returned after %s, want about 50ms", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("ReadByte() returned after %s, deadline not honored", elapsed)
	}
}

func TestWriteDrain(t *testing.T) {
	t.Parallel()

	ptm, pts := openPty(t)

	s, err := Open(pts)
	if err != nil {
		t.Fatalf("Open(): %s", err)
	}
	defer s.Close()

	query := []byte("\x1b[18t\n")
	n, err := s.Write(query)
	if err != nil {
		t.Fatalf("Write(): %s", err)
	}
	if n != len(query) {
		t.Errorf("Write() = %d, want %d", n, len(query))
	}
	if err := s.Drain(); err != nil {
		t.Fatalf("Drain(): %s", err)
	}

	// OPOST is off, so the newline reaches the master untranslated
	got := make([]byte, len(query))
	if _, err := io.ReadFull(ptm, got); err != nil {
		t.Fatalf("io.ReadFull(ptm): %s", err)
	}
	if string(got) != string(query) {
		t.Errorf("master read %q, want %q", got, query)
	}
}

func TestClose_Twice(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)
	fd := int(pts.Fd())

	before, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}

	s, err := Open(pts)
	if err != nil {
		t.Fatalf("Open(): %s", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close(): %s", err)
	}

	// a second session's raw mode must survive a stale Close on the first
	s2, err := Open(pts)
	if err != nil {
		t.Fatalf("Open() #2: %s", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close(): %s", err)
	}
	raw, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}
	if raw.Lflag&unix.ICANON != 0 {
		t.Errorf("stale Close() restored the terminal under a live session")
	}

	if err := s2.Close(); err != nil {
		t.Fatalf("Close() #2: %s", err)
	}
	after, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}
	if after != before {
		t.Errorf("terminal attributes not restored")
	}
}

func TestClosedSession(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)

	s, err := Open(pts)
	if err != nil {
		t.Fatalf("Open(): %s", err)
	}
	s.Close()

	if _, err := s.ReadByte(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadByte() error = %v, want %v", err, ErrClosed)
	}
	if _, err := s.Write([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() error = %v, want %v", err, ErrClosed)
	}
	if err := s.Drain(); !errors.Is(err, ErrClosed) {
		t.Errorf("Drain() error = %v, want %v", err, ErrClosed)
	}
	if err := s.SetWinsize(24, 80); !errors.Is(err, ErrClosed) {
		t.Errorf("SetWinsize() error = %v, want %v", err, ErrClosed)
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	_, pts := openPty(t)
	fd := int(pts.Fd())

	before, err := getTermios(fd)
	if err != nil {
		t.Fatalf("getTermios(): %s", err)
	}

	errBoom := errors.New("boom")
	tests := []struct {
		name    string
		fn      func(s *Session) error
		wantErr error
		panics  bool
	}{
		{
			name:    "success",
			fn:      func(s *Session) error { return nil },
			wantErr: nil,
		},
		{
			name:    "error",
			fn:      func(s *Session) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name:   "panic",
			fn:     func(s *Session) error { panic("boom") },
			panics: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			func() {
				defer func() {
					r := recover()
					if (r != nil) != tc.panics {
						t.Errorf("recover() = %v, panics = %v", r, tc.panics)
					}
				}()
				err = With(pts, time.Second, func(s *Session) error {
					raw, gerr := getTermios(fd)
					if gerr != nil {
						t.Errorf("getTermios(): %s", gerr)
					} else if raw.Lflag&unix.ECHO != 0 {
						t.Errorf("ECHO set inside With")
					}
					return tc.fn(s)
				})
			}()

			if !tc.panics && !errors.Is(err, tc.wantErr) {
				t.Errorf("With() error = %v, want %v", err, tc.wantErr)
			}

			after, gerr := getTermios(fd)
			if gerr != nil {
				t.Fatalf("getTermios(): %s", gerr)
			}
			if after != before {
				t.Errorf("terminal attributes not restored after %s", tc.name)
			}
		})
	}
}

func TestWith_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatalf("os.CreateTemp(): %s", err)
	}
	defer f.Close()

	called := false
	err = With(f, time.Second, func(s *Session) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrNotATerminal) {
		t.Errorf("With() error = %v, want %v", err, ErrNotATerminal)
	}
	if called {
		t.Errorf("With() ran fn for a non-terminal")
	}
}
