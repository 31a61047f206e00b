package termsize

import (
	"dominicbreuker/tsize/pkg/winsize"
	"fmt"
	"io"
)

type parseState int

const (
	readingRows parseState = iota
	readingCols
	done
	failed
)

func (s parseState) String() string {
	switch s {
	case readingRows:
		return "rows"
	case readingCols:
		return "columns"
	case done:
		return "done"
	default:
		return "failed"
	}
}

type byteClass int

const (
	classDigit byteClass = iota
	classSeparator
	classTerminator
	classOther
	numClasses
)

func classify(b byte) byteClass {
	switch {
	case b >= '0' && b <= '9':
		return classDigit
	case b == ';':
		return classSeparator
	case b == 't':
		return classTerminator
	default:
		return classOther
	}
}

type transition struct {
	next       parseState
	accumulate bool
}

// transitions is indexed by the reading states only. A digit stays in the
// current state and is added to that state's field.
var transitions = [...][numClasses]transition{
	readingRows: {
		classDigit:      {next: readingRows, accumulate: true},
		classSeparator:  {next: readingCols},
		classTerminator: {next: failed},
		classOther:      {next: failed},
	},
	readingCols: {
		classDigit:      {next: readingCols, accumulate: true},
		classSeparator:  {next: failed},
		classTerminator: {next: done},
		classOther:      {next: failed},
	},
}

// parseSize reads "<rows>;<cols>t" from r, one byte at a time, and stops
// right after the terminator. Any byte the transition table rejects, a
// field above winsize.Max, or a read error ends the parse with
// ErrMalformedReply.
func parseSize(r io.ByteReader) (Size, error) {
	var fields [2]uint32 // indexed by readingRows, readingCols

	state := readingRows
	for state != done {
		b, err := r.ReadByte()
		if err != nil {
			return Size{}, fmt.Errorf("%w: reading %s: %w", ErrMalformedReply, state, err)
		}

		tr := transitions[state][classify(b)]
		if tr.next == failed {
			return Size{}, fmt.Errorf("%w: %w %#02x in %s", ErrMalformedReply, ErrUnexpectedByte, b, state)
		}
		if tr.accumulate {
			v := fields[state]*10 + uint32(b-'0')
			if v > winsize.Max {
				return Size{}, fmt.Errorf("%w: %s exceed %d", ErrMalformedReply, state, winsize.Max)
			}
			fields[state] = v
		}
		state = tr.next
	}

	return Size{
		Rows: int(fields[readingRows]),
		Cols: int(fields[readingCols]),
	}, nil
}
