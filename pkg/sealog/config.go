package sealog

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/formatters"
	"github.com/sealog/sealog/pkg/plugins"
	"github.com/sealog/sealog/pkg/types"
)

// defaultQueueCapacity bounds the record queue when the config names no
// capacity. Overridable through SEALOG_QUEUE_CAPACITY.
var defaultQueueCapacity = getDefaultQueueCapacity()

const fallbackQueueCapacity = 1024

func getDefaultQueueCapacity() int {
	if v := os.Getenv("SEALOG_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallbackQueueCapacity
}

// HandlerSpec configures one sink. Type selects a built-in handler kind
// (console, file, network, nats, memory) or the name of a registered
// plugin. Level and Filters scope delivery for this handler only; Format
// overrides the engine-wide formatter; Config carries kind-specific options
// as an opaque map.
type HandlerSpec struct {
	Type    string                 `koanf:"type"`
	Level   string                 `koanf:"level"`
	Filters map[string]string      `koanf:"filters"`
	Format  string                 `koanf:"format"`
	Config  map[string]interface{} `koanf:"config"`
}

// RedactionConfig configures message masking. Empty patterns keep the
// built-in default (email addresses).
type RedactionConfig struct {
	Enabled     bool     `koanf:"enabled"`
	Patterns    []string `koanf:"patterns"`
	Replacement string   `koanf:"replacement"`
}

// MetricsConfig configures the pull-based exposition endpoint. An empty
// address disables the built-in server; the handler can still be mounted
// manually via Logger.MetricsHandler.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// Config is the engine configuration. Zero values are filled in by
// Validate, which New calls automatically.
type Config struct {
	// Level is the global minimum level name ("debug" ... "fatal").
	Level string `koanf:"level"`

	// Filters are global field predicates; every predicate must match a
	// record's context for the record to reach any handler.
	Filters map[string]string `koanf:"filters"`

	// Handlers lists the sinks in fan-out order. Order does not imply
	// dependency: a failing handler never blocks the others.
	Handlers []HandlerSpec `koanf:"handlers"`

	// Formatter is the engine-wide default output format (text or json).
	Formatter string `koanf:"formatter"`

	// Plugins lists additional sinks whose Type names a plugin registered
	// on PluginRegistry. They share the handler contract in every way.
	Plugins []HandlerSpec `koanf:"plugins"`

	// QueueCapacity bounds the shared record queue.
	QueueCapacity int `koanf:"queue_capacity"`

	// Workers is the number of prepare goroutines on the dispatch side.
	// Extra workers parallelize filtering, tagging and formatting;
	// handler writes always happen in enqueue order, so per-producer
	// delivery order holds for any worker count.
	Workers int `koanf:"workers"`

	// Redaction configures message masking ahead of tagging.
	Redaction RedactionConfig `koanf:"redaction"`

	// Metrics configures the exposition endpoint.
	Metrics MetricsConfig `koanf:"metrics"`

	// ErrorHandler receives operational errors. Nil selects the stderr
	// handler.
	ErrorHandler ErrorHandler `koanf:"-"`

	// PluginRegistry resolves plugin handler kinds. Nil is fine when
	// Plugins is empty.
	PluginRegistry *plugins.Registry `koanf:"-"`

	// FilterFuncs are additional global filters evaluated after Filters.
	FilterFuncs []types.FilterFunc `koanf:"-"`
}

// DefaultConfig returns a config logging everything at info and above to a
// single console handler in text format.
func DefaultConfig() *Config {
	return &Config{
		Level:         "info",
		Formatter:     formatters.FormatText,
		Handlers:      []HandlerSpec{{Type: "console"}},
		QueueCapacity: defaultQueueCapacity,
		Workers:       1,
	}
}

// Validate fills defaults and rejects configurations the engine cannot run
// with. It is called by New; standalone use is handy when loading files.
func (c *Config) Validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if _, err := types.ParseLevel(c.Level); err != nil {
		return errors.Wrap(err, "config level")
	}

	if c.Formatter == "" {
		c.Formatter = formatters.FormatText
	}
	if _, err := formatters.New(c.Formatter); err != nil {
		return errors.Wrap(err, "config formatter")
	}

	if c.QueueCapacity <= 0 {
		c.QueueCapacity = defaultQueueCapacity
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}

	if len(c.Handlers) == 0 && len(c.Plugins) == 0 {
		return errors.New("config needs at least one handler or plugin")
	}
	for i, spec := range c.Handlers {
		if spec.Type == "" {
			return errors.Errorf("handlers[%d] has no type", i)
		}
		if spec.Level != "" {
			if _, err := types.ParseLevel(spec.Level); err != nil {
				return errors.Wrapf(err, "handlers[%d] level", i)
			}
		}
		if spec.Format != "" {
			if _, err := formatters.New(spec.Format); err != nil {
				return errors.Wrapf(err, "handlers[%d] format", i)
			}
		}
	}
	for i, spec := range c.Plugins {
		if spec.Type == "" {
			return errors.Errorf("plugins[%d] has no type", i)
		}
		if c.PluginRegistry == nil {
			return errors.Errorf("plugins[%d] requires a plugin registry", i)
		}
		if _, ok := c.PluginRegistry.Lookup(spec.Type); !ok {
			return errors.Errorf("plugins[%d]: no plugin registered for kind %q", i, spec.Type)
		}
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = StderrErrorHandler
	}
	return nil
}
