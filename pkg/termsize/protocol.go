package termsize

import (
	"fmt"
	"io"
)

const (
	esc     = 0x1b
	csi8Bit = 0x9b

	// query is CSI 18 t in its 7-bit form: report the text area size in
	// characters.
	query = "\x1b[18t"

	// replyPrefix follows the CSI of a text area size report and tells it
	// apart from other CSI replies.
	replyPrefix = "8;"
)

// expectCSI consumes a Control Sequence Introducer, either the single byte
// 0x9B or ESC followed by '['.
func expectCSI(r io.ByteReader) error {
	b, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("reading CSI: %w", err)
	}
	if b == csi8Bit {
		return nil
	}
	if b != esc {
		return unexpected(b, "CSI")
	}

	b, err = r.ReadByte()
	if err != nil {
		return fmt.Errorf("reading CSI: %w", err)
	}
	if b != '[' {
		return unexpected(b, "'[' after ESC")
	}
	return nil
}

// expect consumes exactly the bytes of match, in order.
func expect(r io.ByteReader, match string) error {
	for i := 0; i < len(match); i++ {
		b, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("reading %q: %w", match, err)
		}
		if b != match[i] {
			return unexpected(b, fmt.Sprintf("%q of %q", match[i], match))
		}
	}
	return nil
}

func unexpected(b byte, want string) error {
	return fmt.Errorf("%w %#02x, want %s", ErrUnexpectedByte, b, want)
}
