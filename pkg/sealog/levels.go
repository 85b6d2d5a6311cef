package sealog

import (
	"github.com/sealog/sealog/pkg/types"
)

// Severity levels, re-exported from pkg/types so applications only need this
// package for everyday use.
const (
	LevelDebug = types.LevelDebug
	LevelInfo  = types.LevelInfo
	LevelWarn  = types.LevelWarn
	LevelError = types.LevelError
	LevelFatal = types.LevelFatal
)

// ParseLevel converts a level name ("debug" ... "fatal") to its numeric
// value, case-insensitively.
func ParseLevel(name string) (int, error) {
	return types.ParseLevel(name)
}

// LevelName returns the canonical upper-case name for a level.
func LevelName(level int) string {
	return types.LevelName(level)
}

// SetLevel changes the global minimum level of a running logger. Records
// below the level are rejected by the global filter chain before any
// handler sees them.
func (l *Logger) SetLevel(level int) {
	l.level.Store(int32(level))
}

// GetLevel returns the current global minimum level.
func (l *Logger) GetLevel() int {
	return int(l.level.Load())
}
