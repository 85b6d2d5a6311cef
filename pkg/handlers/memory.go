package handlers

import (
	"sync"
)

// DefaultMemoryCapacity bounds the memory handler's ring when the config
// names no capacity.
const DefaultMemoryCapacity = 1000

// Memory keeps the most recent formatted entries in a bounded in-process
// ring. It is useful for tests and for surfacing recent log lines in
// diagnostic endpoints without touching disk.
type Memory struct {
	mu       sync.Mutex
	entries  [][]byte
	capacity int
	closed   bool
}

// NewMemory creates a memory handler retaining up to capacity entries.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{capacity: capacity}
}

// newMemoryFromConfig builds a memory handler from a HandlerSpec config map.
// Options: capacity.
func newMemoryFromConfig(cfg map[string]interface{}) *Memory {
	return NewMemory(intOption(cfg, "capacity", DefaultMemoryCapacity))
}

// Write implements types.Handler. When full, the oldest entry is evicted.
func (m *Memory) Write(entry []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(entry))
	copy(buf, entry)
	if len(m.entries) == m.capacity {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, buf)
	return len(entry), nil
}

// Flush implements types.Handler.
func (m *Memory) Flush() error {
	return nil
}

// Close implements types.Handler.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Name implements types.Handler.
func (m *Memory) Name() string {
	return "memory"
}

// Entries returns a snapshot of the retained entries, oldest first.
func (m *Memory) Entries() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.entries))
	for i, e := range m.entries {
		buf := make([]byte, len(e))
		copy(buf, e)
		out[i] = buf
	}
	return out
}

// Len returns the number of retained entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
