package handlers

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// DefaultNATSSubject is used when the handler config names no subject.
const DefaultNATSSubject = "logs"

// NATS publishes formatted entries to a NATS subject, one message per
// entry. Publishing is asynchronous on the client side; Flush pushes
// pending messages to the server.
type NATS struct {
	mu      sync.Mutex
	conn    *nats.Conn
	subject string
}

// NewNATS connects to the server at url and publishes to subject.
func NewNATS(url, subject string) (*NATS, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if subject == "" {
		subject = DefaultNATSSubject
	}
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to nats %s", url)
	}
	return &NATS{conn: conn, subject: subject}, nil
}

// newNATSFromConfig builds a nats handler from a HandlerSpec config map.
// Options: url, subject.
func newNATSFromConfig(cfg map[string]interface{}) (*NATS, error) {
	return NewNATS(
		stringOption(cfg, "url", nats.DefaultURL),
		stringOption(cfg, "subject", DefaultNATSSubject),
	)
}

// Write implements types.Handler.
func (h *NATS) Write(entry []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return 0, errors.New("nats handler is closed")
	}
	if err := h.conn.Publish(h.subject, entry); err != nil {
		return 0, errors.Wrapf(err, "publish to %s", h.subject)
	}
	return len(entry), nil
}

// Flush implements types.Handler.
func (h *NATS) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil
	}
	return h.conn.Flush()
}

// Close drains pending messages and closes the connection.
func (h *NATS) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn == nil {
		return nil
	}
	err := h.conn.Drain()
	h.conn = nil
	return err
}

// Name implements types.Handler.
func (h *NATS) Name() string {
	return "nats:" + h.subject
}
