// Package types defines the shared data model and capability contracts of
// the sealog engine. It exists so that handlers, formatters, filters and the
// logger facade can depend on a single leaf package without import cycles.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Log levels, ordered by severity. A record at level L reaches a handler only
// when L is at or above every threshold on the record's path.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// LevelName returns the canonical upper-case name for a level.
func LevelName(level int) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to its numeric value. Matching is
// case-insensitive. Returns an error for unrecognized names.
func ParseLevel(name string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Record is the immutable value produced by one logging call. Ownership moves
// from the producer to the queue to the dispatcher to the handlers; there is
// a single owner at every point, so no field needs locking. The only
// post-construction write is the one-time attachment of Tag by the
// dispatcher, which owns the record at that moment.
type Record struct {
	// Sequence is a process-unique, monotonically increasing number
	// assigned at enqueue time.
	Sequence uint64

	// Level is one of the Level* constants.
	Level int

	// Timestamp is the capture-time instant. Go's time.Time carries both
	// the wall clock and the monotonic reading.
	Timestamp time.Time

	// Message is the log text.
	Message string

	// Context holds optional structured fields. Keys are unique; ordering
	// is not significant.
	Context map[string]interface{}

	// Tag is the keyed integrity tag, attached once by the dispatcher
	// before formatting. Nil until then.
	Tag []byte
}

// Handler is the sink capability contract. Console, file, network, nats and
// plugin-supplied sinks all satisfy it; the engine never needs to know a
// handler's concrete kind.
//
// Handlers own their internal buffering and timeouts. A handler must not
// block the dispatcher indefinitely: apply a deadline and return an error
// instead of hanging.
type Handler interface {
	// Write consumes one formatted entry. Returns the number of bytes
	// accepted and any error. Errors are counted by the dispatcher and
	// never propagate to the application.
	Write(entry []byte) (int, error)

	// Flush forces any internally buffered data out.
	Flush() error

	// Close releases the handler's resources.
	Close() error

	// Name identifies the handler in error callbacks and metrics.
	Name() string
}

// Formatter renders a record (with its tag already attached) to bytes.
// Implementations must be pure: deterministic for identical input and free
// of side effects.
type Formatter interface {
	Format(rec *Record) ([]byte, error)
}

// FilterFunc decides whether a record should be logged. It receives the
// level, message and context fields, and returns true to keep the record.
type FilterFunc func(level int, message string, fields map[string]interface{}) bool
