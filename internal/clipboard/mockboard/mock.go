// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

import (
	"io"
	"sync"
)

// MockClipboard implements clipboard.Clipboard in memory.
type MockClipboard struct {
	mu          sync.Mutex
	data        []byte
	writes      int
	unsupported bool

	// Err, when set, is returned by every Write.
	Err error
}

// New creates a new MockClipboard instance
func New() *MockClipboard {
	return &MockClipboard{}
}

// Unsupported returns a clipboard that reports it cannot be written.
func Unsupported() *MockClipboard {
	return &MockClipboard{unsupported: true}
}

// Write stores everything read from r.
func (m *MockClipboard) Write(r io.Reader) error {
	if m.Err != nil {
		return m.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.writes++
	return nil
}

// IsSupported reports false only for clipboards built with Unsupported.
func (m *MockClipboard) IsSupported() bool {
	return !m.unsupported
}

// Text returns the current clipboard contents.
func (m *MockClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data)
}

// Writes returns how many successful writes happened.
func (m *MockClipboard) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
