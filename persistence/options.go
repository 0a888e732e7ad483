package persistence

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/sparseset"
)

type options struct {
	logger           *sparseset.Logger
	metricsCollector MetricsCollector
	compression      Compression
	concurrency      int
}

// Option configures a Manager.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sparseset.NewJSONLogger(slog.LevelInfo)
//	mgr := persistence.NewManager(store, persistence.WithLogger(logger))
func WithLogger(logger *sparseset.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = sparseset.NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(sparseset.NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = sparseset.NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCompression selects the encoding of saved sets. Loading detects the
// encoding and ignores this setting.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency bounds the number of parallel store requests issued by
// SaveMany and LoadMany. Values <= 0 select GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           sparseset.NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		compression:      CompressionNone,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
