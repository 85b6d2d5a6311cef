package sealog

import (
	"sync"

	"github.com/sealog/sealog/pkg/types"
)

// Queue is the fixed-capacity buffer between producers and the dispatcher.
// TryEnqueue never blocks: a full queue rejects the record immediately and
// the caller counts the drop. Consumers range over Records; the channel is
// closed on shutdown after which they drain whatever remains.
//
// Ordering: records from a single producer are dequeued in enqueue order.
// Concurrent producers may interleave arbitrarily.
type Queue struct {
	mu       sync.RWMutex
	ch       chan *types.Record
	capacity int
	closed   bool
}

// NewQueue creates a queue with the given capacity. Capacity must be
// positive; Config.Validate guarantees that for queues built by the logger.
func NewQueue(capacity int) *Queue {
	return &Queue{
		ch:       make(chan *types.Record, capacity),
		capacity: capacity,
	}
}

// TryEnqueue attempts a non-blocking insert. It returns ErrQueueFull when
// the queue is at capacity and ErrNotRunning after Close. The read lock is
// held only to fence against a concurrent Close; producers never wait on
// each other beyond that.
func (q *Queue) TryEnqueue(rec *types.Record) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrNotRunning
	}
	select {
	case q.ch <- rec:
		return nil
	default:
		return ErrQueueFull
	}
}

// Records exposes the drain side of the queue. The channel closes once
// Close has been called and is never reopened.
func (q *Queue) Records() <-chan *types.Record {
	return q.ch
}

// Close stops intake. Records already queued remain readable until drained.
// Safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Len returns the current queue depth.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the configured capacity.
func (q *Queue) Cap() int {
	return q.capacity
}
