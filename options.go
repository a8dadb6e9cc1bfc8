package objtrack

import (
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Option configures a Registry.
type Option func(*options)

// options holds configuration for a Registry instance.
type options struct {
	name          string
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	capacity      int
}

// newOptions applies opts on top of the defaults.
func newOptions(opts ...Option) *options {
	cfg := &options{
		name:          "objtrack",
		meterProvider: noop.NewMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithName sets a human-readable name for the registry. The name appears
// in log fields, metric attributes, and error context. If not provided,
// "objtrack" is used.
func WithName(name string) Option {
	return func(c *options) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets a structured logger for the registry. Registrations
// and purges are recorded at debug level. If not provided, the registry
// does not log.
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) {
		c.logger = logger
	}
}

// WithMeterProvider sets an OpenTelemetry meter provider for registry
// metrics (identifiers issued, entries purged). If not provided, metrics
// are discarded.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *options) {
		if provider != nil {
			c.meterProvider = provider
		}
	}
}

// WithInitialCapacity pre-sizes the registry's internal maps for the
// expected number of tracked objects. This is an optimization hint only.
func WithInitialCapacity(n int) Option {
	return func(c *options) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// newInstanceID generates the unique identifier for a registry instance.
func newInstanceID() string {
	return uuid.NewString()
}
