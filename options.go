package hmsearch

import (
	"log/slog"

	"github.com/hupe1980/hmsearch/kvstore"
)

type options struct {
	opener  kvstore.Opener
	logger  *Logger
	metrics MetricsCollector
	dedupe  bool
}

// Option configures Init, Open and Import behavior.
type Option func(*options)

// WithStore injects a custom store opener. The default opener is
// kvstore.OpenBadger; tests typically pass kvstore.MemoryOpener().
func WithStore(opener kvstore.Opener) Option {
	return func(o *options) {
		if opener != nil {
			o.opener = opener
		}
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithDedupe enables duplicate suppression on insert. By default a
// repeated insert of the same hash appends another copy to every
// partition slot, matching the append-only writer; with dedupe the
// writer scans each slot first and skips copies that are already
// present, at a cost linear in the slot size.
func WithDedupe(dedupe bool) Option {
	return func(o *options) {
		o.dedupe = dedupe
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		opener:  kvstore.OpenBadger,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type lookupOptions struct {
	maxDistance int
}

// LookupOption narrows a single lookup.
type LookupOption func(*lookupOptions)

// WithMaxDistance caps results at a distance tighter than the index's
// configured maximum error. Values below zero are ignored.
func WithMaxDistance(max int) LookupOption {
	return func(o *lookupOptions) {
		o.maxDistance = max
	}
}

func applyLookupOptions(optFns []LookupOption) lookupOptions {
	o := lookupOptions{maxDistance: -1}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
