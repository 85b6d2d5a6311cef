package sealog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/internal/metrics"
	"github.com/sealog/sealog/pkg/features"
	"github.com/sealog/sealog/pkg/formatters"
	"github.com/sealog/sealog/pkg/handlers"
	"github.com/sealog/sealog/pkg/integrity"
	"github.com/sealog/sealog/pkg/types"
)

// Logger lifecycle states.
const (
	stateInitializing int32 = iota
	stateRunning
	stateShuttingDown
	stateStopped
)

// Logger is the engine facade. It owns the bounded queue, the dispatcher
// workers, the handler routes, the integrity tagger and the metrics
// collector. Logging calls never block and never return errors; overload
// and handler failures are observable only through the metrics and the
// error handler.
//
// Construct with New, log with Debug through Fatal, and stop with Shutdown
// or Close. A Logger is safe for concurrent use by any number of
// goroutines.
type Logger struct {
	state      atomic.Int32
	level      atomic.Int32
	seq        atomic.Uint64
	discarding atomic.Bool

	queue       *Queue
	routes      []*route
	global      atomic.Pointer[features.Chain]
	filterFuncs []types.FilterFunc
	tagger      *integrity.Tagger
	redactor    *features.Redactor
	collector   *metrics.Collector
	onError     ErrorHandler

	workerWg      sync.WaitGroup
	metricsServer *MetricsServer
	closeOnce     sync.Once
	closeErr      error
}

// New builds a Logger from the configuration and the secret integrity key.
// The key must be at least integrity.MinKeyLength bytes; it is copied and
// the caller's slice may be discarded. Construction is all-or-nothing: an
// invalid key or any handler that fails to initialize returns an error and
// no Logger, with already-opened handlers closed again.
func New(cfg *Config, secretKey []byte) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tagger, err := integrity.NewTagger(secretKey)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		queue:     NewQueue(cfg.QueueCapacity),
		tagger:    tagger,
		collector: metrics.NewCollector(),
		onError:   cfg.ErrorHandler,
	}
	l.state.Store(stateInitializing)

	levelNum, _ := types.ParseLevel(cfg.Level)
	l.level.Store(int32(levelNum))

	l.filterFuncs = append(l.filterFuncs, cfg.FilterFuncs...)
	l.SetGlobalFilters(cfg.Filters)

	if cfg.Redaction.Enabled {
		redactor, err := features.NewRedactor(cfg.Redaction.Patterns, cfg.Redaction.Replacement)
		if err != nil {
			return nil, err
		}
		l.redactor = redactor
	}

	if err := l.buildRoutes(cfg); err != nil {
		l.closeHandlers()
		return nil, err
	}

	if cfg.Metrics.Addr != "" {
		server, err := l.ServeMetrics(cfg.Metrics.Addr)
		if err != nil {
			l.closeHandlers()
			return nil, err
		}
		l.metricsServer = server
	}

	l.startDispatch(cfg.Workers)
	l.state.Store(stateRunning)
	return l, nil
}

// buildRoutes constructs one route per handler spec, built-ins first then
// plugins, preserving configuration order within each list.
func (l *Logger) buildRoutes(cfg *Config) error {
	for i, spec := range cfg.Handlers {
		h, err := handlers.New(spec.Type, spec.Config)
		if errors.Is(err, handlers.ErrUnknownKind) && cfg.PluginRegistry != nil {
			h, err = cfg.PluginRegistry.NewHandler(spec.Type, spec.Config)
		}
		if err != nil {
			return errors.Wrapf(err, "build handlers[%d]", i)
		}
		if err := l.addRoute(spec, h, cfg.Formatter); err != nil {
			return errors.Wrapf(err, "build handlers[%d]", i)
		}
	}
	for i, spec := range cfg.Plugins {
		h, err := cfg.PluginRegistry.NewHandler(spec.Type, spec.Config)
		if err != nil {
			return errors.Wrapf(err, "build plugins[%d]", i)
		}
		if err := l.addRoute(spec, h, cfg.Formatter); err != nil {
			return errors.Wrapf(err, "build plugins[%d]", i)
		}
	}
	return nil
}

func (l *Logger) addRoute(spec HandlerSpec, h types.Handler, defaultFormat string) error {
	format := spec.Format
	if format == "" {
		format = defaultFormat
	}
	formatter, err := formatters.New(format)
	if err != nil {
		_ = h.Close()
		return err
	}

	minLevel := types.LevelDebug
	if spec.Level != "" {
		minLevel, _ = types.ParseLevel(spec.Level)
	}
	l.routes = append(l.routes, &route{
		name:      h.Name(),
		handler:   h,
		formatter: formatter,
		chain:     features.NewChain(minLevel, spec.Filters),
	})
	return nil
}

// Debug logs a message at debug level with optional context fields.
func (l *Logger) Debug(message string, fields map[string]interface{}) {
	l.log(types.LevelDebug, message, fields)
}

// Info logs a message at info level with optional context fields.
func (l *Logger) Info(message string, fields map[string]interface{}) {
	l.log(types.LevelInfo, message, fields)
}

// Warn logs a message at warn level with optional context fields.
func (l *Logger) Warn(message string, fields map[string]interface{}) {
	l.log(types.LevelWarn, message, fields)
}

// Error logs a message at error level with optional context fields.
func (l *Logger) Error(message string, fields map[string]interface{}) {
	l.log(types.LevelError, message, fields)
}

// Fatal logs a message at fatal level with optional context fields. Fatal
// is the highest severity; it does not terminate the process.
func (l *Logger) Fatal(message string, fields map[string]interface{}) {
	l.log(types.LevelFatal, message, fields)
}

// Log enqueues a record at an explicit level.
func (l *Logger) Log(level int, message string, fields map[string]interface{}) {
	l.log(level, message, fields)
}

// log is the producer hot path: build the record, stamp the sequence
// number, attempt a non-blocking enqueue. Every failure mode ends in a
// counted drop; nothing here can block or panic the caller.
func (l *Logger) log(level int, message string, fields map[string]interface{}) {
	if l.state.Load() != stateRunning {
		l.collector.TrackError("enqueue")
		l.onError("enqueue", "", ErrNotRunning)
		return
	}

	rec := &types.Record{
		Sequence:  l.seq.Add(1),
		Level:     level,
		Timestamp: time.Now(),
		Message:   message,
		Context:   fields,
	}

	// The gauge moves up before the insert so a racing dequeue cannot
	// drive it negative; a rejection backs the increment out.
	l.collector.TrackEnqueued()
	if err := l.queue.TryEnqueue(rec); err != nil {
		l.collector.TrackDequeued()
		l.collector.TrackError("enqueue")
		l.onError("enqueue", "", err)
	}
}

// SetGlobalFilters replaces the global field predicates on a running
// logger. Used by config hot-reload. The filter functions installed at
// construction are carried over; only the predicates change.
func (l *Logger) SetGlobalFilters(predicates map[string]string) {
	chain := features.NewChain(types.LevelDebug, predicates)
	for _, fn := range l.filterFuncs {
		chain.AddFilter(fn)
	}
	l.global.Store(chain)
}

// MetricsSnapshot is a point-in-time reading of the engine counters.
type MetricsSnapshot struct {
	LogsProcessed uint64 `json:"logs_processed"`
	Errors        uint64 `json:"errors"`
	QueueSize     int64  `json:"queue_size"`
}

// Metrics returns the current counter values.
func (l *Logger) Metrics() MetricsSnapshot {
	snap := l.collector.Snapshot()
	return MetricsSnapshot{
		LogsProcessed: snap.LogsProcessed,
		Errors:        snap.Errors,
		QueueSize:     snap.QueueSize,
	}
}

// Flush pushes buffered data out of every handler. It does not wait for
// queued records; use Shutdown for that.
func (l *Logger) Flush() error {
	var errs []error
	for _, rt := range l.routes {
		if err := rt.handler.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("flush errors: %v", errs)
	}
	return nil
}

// IsClosed reports whether the logger has left the running state.
func (l *Logger) IsClosed() bool {
	return l.state.Load() != stateRunning
}

// Shutdown stops the logger. Intake closes immediately: logging calls made
// from this point on are dropped and counted. Workers then drain whatever
// was already queued. If ctx expires before the drain completes, the
// remaining records are discarded, each counted as an error, and ctx's
// error is returned. Handlers are closed and the secret key is wiped in
// every case. Calling Shutdown again returns the first call's result.
func (l *Logger) Shutdown(ctx context.Context) error {
	l.state.CompareAndSwap(stateRunning, stateShuttingDown)

	l.closeOnce.Do(func() {
		l.queue.Close()

		done := make(chan struct{})
		go func() {
			l.workerWg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			l.discarding.Store(true)
			<-done
			l.closeErr = ctx.Err()
		}

		l.closeHandlers()
		if l.metricsServer != nil {
			_ = l.metricsServer.Close()
		}
		l.tagger.Zero()
		l.state.Store(stateStopped)
	})
	return l.closeErr
}

// Close is Shutdown with an unbounded drain wait.
func (l *Logger) Close() error {
	return l.Shutdown(context.Background())
}

func (l *Logger) closeHandlers() {
	for _, rt := range l.routes {
		if err := rt.handler.Close(); err != nil {
			l.onError("close", rt.name, err)
		}
	}
}
