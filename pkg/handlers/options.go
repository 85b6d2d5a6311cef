// Package handlers provides the built-in sinks of the engine: console, file,
// network and nats, plus an in-memory handler used mostly in tests. All of
// them satisfy types.Handler; plugin-supplied sinks implement the same
// contract and are registered through pkg/plugins.
package handlers

import (
	"time"
)

// Handler configs arrive as opaque key-value maps from the configuration
// file, so option values may be strings, ints or floats depending on the
// decoder. These helpers normalize the common cases.

func stringOption(cfg map[string]interface{}, key, fallback string) string {
	if v, ok := cfg[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func intOption(cfg map[string]interface{}, key string, fallback int) int {
	v, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func durationOption(cfg map[string]interface{}, key string, fallback time.Duration) time.Duration {
	v, ok := cfg[key]
	if !ok {
		return fallback
	}
	switch d := v.(type) {
	case string:
		if parsed, err := time.ParseDuration(d); err == nil {
			return parsed
		}
	case int:
		return time.Duration(d) * time.Second
	case float64:
		return time.Duration(d * float64(time.Second))
	}
	return fallback
}

func boolOption(cfg map[string]interface{}, key string, fallback bool) bool {
	if v, ok := cfg[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}
