package handlers

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// DefaultConsoleBufferSize bounds the console handler's internal write
// buffer when no capacity is configured.
const DefaultConsoleBufferSize = 8 * 1024

// Console writes formatted entries to a terminal stream. Its capacity option
// bounds the internal bufio buffer, not the engine's shared queue. Writes
// are flushed immediately so interleaved program output stays readable.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	writer *bufio.Writer
	name   string
}

// NewConsole creates a console handler writing to w with the given buffer
// capacity. A nil writer defaults to stdout; capacity <= 0 uses
// DefaultConsoleBufferSize.
func NewConsole(w io.Writer, capacity int) *Console {
	if w == nil {
		w = os.Stdout
	}
	if capacity <= 0 {
		capacity = DefaultConsoleBufferSize
	}
	return &Console{
		out:    w,
		writer: bufio.NewWriterSize(w, capacity),
		name:   "console",
	}
}

// newConsoleFromConfig builds a console handler from a HandlerSpec config
// map. Options: target (stdout|stderr), capacity (buffer bytes).
func newConsoleFromConfig(cfg map[string]interface{}) *Console {
	var w io.Writer = os.Stdout
	if stringOption(cfg, "target", "stdout") == "stderr" {
		w = os.Stderr
	}
	return NewConsole(w, intOption(cfg, "capacity", DefaultConsoleBufferSize))
}

// Write implements types.Handler.
func (c *Console) Write(entry []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.writer.Write(entry)
	if err != nil {
		return n, err
	}
	return n, c.writer.Flush()
}

// Flush implements types.Handler.
func (c *Console) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writer.Flush()
}

// Close flushes any buffered output. The underlying stream is not closed;
// stdout and stderr outlive the logger.
func (c *Console) Close() error {
	return c.Flush()
}

// Name implements types.Handler.
func (c *Console) Name() string {
	return c.name
}
