// Package device provides command links to the laser and translation-stage
// instruments and a writer that streams a planned toolpath to them. The
// planning pipeline never depends on this package; it exists so planned
// toolpaths can be fabricated without another process in between.
package device

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// Link is a request/response command channel to an instrument controller.
// Implementations must be safe for sequential use from one goroutine.
type Link interface {
	// Send writes one command and returns the controller's reply line.
	Send(cmd string) (string, error)
	// Close releases the underlying channel.
	Close() error
}

// SerialLink is a Link over a serial port speaking a line protocol:
// commands are terminated with CRLF and replies are single lines.
type SerialLink struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
	mu     sync.Mutex
}

// OpenSerialLink opens the serial port at path with the given baud rate.
func OpenSerialLink(path string, baud int) (*SerialLink, error) {
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial link %s: %w", path, err)
	}
	return NewSerialLink(port), nil
}

// NewSerialLink wraps an already-open port. Used by tests to substitute an
// in-memory pipe for real hardware.
func NewSerialLink(port io.ReadWriteCloser) *SerialLink {
	return &SerialLink{port: port, reader: bufio.NewReader(port)}
}

// Send writes cmd and reads one reply line.
func (l *SerialLink) Send(cmd string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.port.Write([]byte(cmd + "\r\n")); err != nil {
		return "", fmt.Errorf("write command %q: %w", cmd, err)
	}
	reply, err := l.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply to %q: %w", cmd, err)
	}
	return strings.TrimSpace(reply), nil
}

// Close closes the port.
func (l *SerialLink) Close() error { return l.port.Close() }

// MockLink simulates an instrument controller for tests and dry runs. Replies
// come from the Respond function; unmatched commands return "OK". Every sent
// command is recorded.
type MockLink struct {
	mu       sync.Mutex
	Respond  func(cmd string) string
	commands []string
	closed   bool
}

// NewMockLink creates a mock link with the given responder. A nil responder
// answers "OK" to everything.
func NewMockLink(respond func(cmd string) string) *MockLink {
	return &MockLink{Respond: respond}
}

// Send records the command and returns the scripted reply.
func (m *MockLink) Send(cmd string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", fmt.Errorf("link closed")
	}
	m.commands = append(m.commands, cmd)
	if m.Respond != nil {
		return m.Respond(cmd), nil
	}
	return "OK", nil
}

// Close marks the link closed.
func (m *MockLink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Commands returns a copy of every command sent so far.
func (m *MockLink) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.commands...)
}
