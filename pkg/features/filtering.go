// Package features contains pipeline stages that sit between the dispatcher
// and the handlers: filter chains and redaction.
package features

import (
	"fmt"

	"github.com/sealog/sealog/pkg/types"
)

// Chain decides whether a record is allowed through at one point of the
// pipeline. The engine evaluates a global chain first, then one chain per
// handler, so a record can reach a subset of the configured handlers.
//
// A chain passes a record when the record's level is at or above MinLevel,
// every field predicate matches, and every custom filter returns true.
// Rejection is not an error: it is simply not delivered past this point.
type Chain struct {
	minLevel   int
	predicates map[string]string
	filters    []types.FilterFunc
}

// NewChain builds a chain from a minimum level and field predicates. A nil
// or empty predicates map matches everything at or above minLevel.
func NewChain(minLevel int, predicates map[string]string) *Chain {
	c := &Chain{minLevel: minLevel}
	if len(predicates) > 0 {
		c.predicates = make(map[string]string, len(predicates))
		for k, v := range predicates {
			c.predicates[k] = v
		}
	}
	return c
}

// AddFilter appends a custom filter function. Filters are evaluated in the
// order added; all must pass.
func (c *Chain) AddFilter(filter types.FilterFunc) {
	if filter != nil {
		c.filters = append(c.filters, filter)
	}
}

// MinLevel returns the chain's level threshold.
func (c *Chain) MinLevel() int {
	return c.minLevel
}

// Allow reports whether a record with the given level, message and context
// passes the chain.
func (c *Chain) Allow(level int, message string, fields map[string]interface{}) bool {
	if level < c.minLevel {
		return false
	}
	for key, want := range c.predicates {
		got, ok := fields[key]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != want {
			return false
		}
	}
	for _, filter := range c.filters {
		if !filter(level, message, fields) {
			return false
		}
	}
	return true
}

// AllowRecord is a convenience wrapper over Allow for *types.Record.
func (c *Chain) AllowRecord(rec *types.Record) bool {
	return c.Allow(rec.Level, rec.Message, rec.Context)
}
