package sealog

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Sentinel errors for the enqueue path. They are counted in the metrics and
// reported through the error handler; logging calls themselves never return
// them to the application.
var (
	// ErrQueueFull is reported when the bounded queue rejects a record.
	ErrQueueFull = errors.New("sealog: queue full")

	// ErrNotRunning is reported when a logging call arrives before the
	// logger finished construction or after shutdown began.
	ErrNotRunning = errors.New("sealog: logger is not running")

	// ErrClosed is returned by lifecycle methods on a stopped logger.
	ErrClosed = errors.New("sealog: logger is closed")
)

// ErrorHandler receives operational errors: rejected enqueues, handler write
// failures, format failures. It must be fast and must not log through the
// same engine, or the failure would feed on itself. Source names the failing
// stage; handler names the sink involved, when any.
type ErrorHandler func(source, handler string, err error)

// SilentErrorHandler discards all errors. Metrics still count them.
var SilentErrorHandler ErrorHandler = func(source, handler string, err error) {}

// StderrErrorHandler writes errors to stderr.
var StderrErrorHandler ErrorHandler = func(source, handler string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "sealog: %s %s: %v\n", source, handler, err)
	}
}
