// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/creack/pty"
)

// MockTerminal plays a terminal on the master side of a pseudo-terminal.
// Code under test uses TTY(), the slave side, like a real terminal device.
// Registered queries are answered as soon as they arrive.
type MockTerminal struct {
	ptm *os.File
	pts *os.File

	mu         sync.Mutex
	inputCond  *sync.Cond // signalled whenever input arrives
	input      bytes.Buffer
	responses  []response
	readerDone chan struct{}
}

type response struct {
	query   []byte
	reply   []byte
	scanned int // offset into input already matched against query
}

// NewMockTerminal opens a pty pair and starts collecting what is written
// to the slave side.
func NewMockTerminal() (*MockTerminal, error) {
	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("pty.Open(): %w", err)
	}

	m := &MockTerminal{
		ptm:        ptm,
		pts:        pts,
		readerDone: make(chan struct{}),
	}
	m.inputCond = sync.NewCond(&m.mu)

	go m.collect()

	return m, nil
}

func (m *MockTerminal) collect() {
	defer close(m.readerDone)

	buf := make([]byte, 4096)
	for {
		n, err := m.ptm.Read(buf)
		if n > 0 {
			m.mu.Lock()
			m.input.Write(buf[:n])
			replies := m.matchLocked()
			m.inputCond.Broadcast()
			m.mu.Unlock()

			for _, reply := range replies {
				if _, err := m.ptm.Write(reply); err != nil {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// matchLocked returns the replies for every registered query that has
// arrived since it was last matched.
func (m *MockTerminal) matchLocked() [][]byte {
	var replies [][]byte

	data := m.input.Bytes()
	for i := range m.responses {
		r := &m.responses[i]
		for {
			idx := bytes.Index(data[r.scanned:], r.query)
			if idx < 0 {
				break
			}
			r.scanned += idx + len(r.query)
			if r.reply != nil {
				replies = append(replies, r.reply)
			}
		}
	}

	return replies
}

// RespondTo makes the terminal answer every future occurrence of query
// with reply. A nil reply swallows the query so the caller times out.
func (m *MockTerminal) RespondTo(query string, reply []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.responses = append(m.responses, response{
		query:   []byte(query),
		reply:   reply,
		scanned: m.input.Len(),
	})
}

// TTY returns the slave side of the pty.
func (m *MockTerminal) TTY() *os.File {
	return m.pts
}

// Input returns everything written to the terminal so far.
func (m *MockTerminal) Input() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input.String()
}

// WaitForInput waits for the expected string to be written to the terminal
// within the given timeout in milliseconds.
func (m *MockTerminal) WaitForInput(expected string, timeoutMs int) error {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if bytes.Contains(m.input.Bytes(), []byte(expected)) {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for input %q, got: %q", expected, m.input.String())
		}

		// wake up periodically to check the deadline
		go func() {
			time.Sleep(50 * time.Millisecond)
			m.inputCond.Broadcast()
		}()
		m.inputCond.Wait()
	}
}

// Close closes both sides of the pty and waits for the collector to exit.
func (m *MockTerminal) Close() error {
	errPts := m.pts.Close()
	errPtm := m.ptm.Close()
	<-m.readerDone

	if errPts != nil {
		return errPts
	}
	return errPtm
}
