package sealog

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// MetricsServer serves the logger's counters over HTTP at /metrics in the
// line-oriented Prometheus text format.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
}

// Addr returns the bound address, useful when the configured address used
// port 0.
func (s *MetricsServer) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server.
func (s *MetricsServer) Close() error {
	return s.server.Close()
}

// MetricsHandler returns an http.Handler exposing the current snapshot of
// {logs_processed, errors, queue_size}. The handler can be mounted on any
// mux, any number of times.
func (l *Logger) MetricsHandler() http.Handler {
	return l.collector.Handler()
}

// ServeMetrics binds addr and serves the metrics endpoint until the
// returned server is closed or the logger shuts down. The endpoint can be
// served on several addresses at once; each call is independent.
func (l *Logger) ServeMetrics(addr string) (*MetricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "bind metrics endpoint %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", l.MetricsHandler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = server.Serve(listener)
	}()

	return &MetricsServer{server: server, listener: listener}, nil
}
