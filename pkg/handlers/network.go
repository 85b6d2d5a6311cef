package handlers

import (
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Network handler defaults. Deadlines keep a stalled peer from blocking the
// dispatcher; the handler surfaces the error instead of hanging.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultWriteTimeout = 2 * time.Second
	DefaultRetries      = 2
)

// Network streams formatted entries over a TCP connection. A failed write is
// retried a bounded number of times with a fresh connection before the error
// is surfaced to the dispatcher.
type Network struct {
	mu           sync.Mutex
	conn         net.Conn
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	retries      int
}

// NewNetwork dials the remote collector at address (host:port).
func NewNetwork(address string) (*Network, error) {
	return newNetwork(address, DefaultDialTimeout, DefaultWriteTimeout, DefaultRetries)
}

func newNetwork(address string, dialTimeout, writeTimeout time.Duration, retries int) (*Network, error) {
	if address == "" {
		return nil, errors.New("network handler requires an address option")
	}
	h := &Network{
		address:      address,
		dialTimeout:  dialTimeout,
		writeTimeout: writeTimeout,
		retries:      retries,
	}
	if err := h.connect(); err != nil {
		return nil, err
	}
	return h, nil
}

// newNetworkFromConfig builds a network handler from a HandlerSpec config
// map. Options: address (required), dial_timeout, write_timeout, retries.
func newNetworkFromConfig(cfg map[string]interface{}) (*Network, error) {
	return newNetwork(
		stringOption(cfg, "address", ""),
		durationOption(cfg, "dial_timeout", DefaultDialTimeout),
		durationOption(cfg, "write_timeout", DefaultWriteTimeout),
		intOption(cfg, "retries", DefaultRetries),
	)
}

// connect establishes the TCP connection. Caller holds h.mu, or is the
// constructor before the handler is shared.
func (h *Network) connect() error {
	conn, err := net.DialTimeout("tcp", h.address, h.dialTimeout)
	if err != nil {
		return errors.Wrapf(err, "dial %s", h.address)
	}
	h.conn = conn
	return nil
}

// Write implements types.Handler. On write failure the connection is
// re-dialed and the entry resent, up to the configured retry budget.
func (h *Network) Write(entry []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= h.retries; attempt++ {
		if h.conn == nil {
			if err := h.connect(); err != nil {
				lastErr = err
				continue
			}
		}
		_ = h.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		n, err := h.conn.Write(entry)
		if err == nil {
			return n, nil
		}
		lastErr = err
		_ = h.conn.Close()
		h.conn = nil
	}
	return 0, errors.Wrapf(lastErr, "write to %s", h.address)
}

// Flush implements types.Handler. TCP writes are unbuffered here.
func (h *Network) Flush() error {
	return nil
}

// Close closes the connection.
func (h *Network) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	return err
}

// Name implements types.Handler.
func (h *Network) Name() string {
	return "network:" + h.address
}
