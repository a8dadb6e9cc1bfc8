package objtrack

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestDefaults(t *testing.T) {
	cfg := newOptions()

	assert.Equal(t, "objtrack", cfg.name)
	assert.Nil(t, cfg.logger)
	assert.NotNil(t, cfg.meterProvider)
	assert.Zero(t, cfg.capacity)
}

func TestWithName(t *testing.T) {
	cfg := newOptions(WithName("encoder"))
	assert.Equal(t, "encoder", cfg.name)
}

func TestWithNameEmptyIgnored(t *testing.T) {
	cfg := newOptions(WithName(""))
	assert.Equal(t, "objtrack", cfg.name)
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := newOptions(WithLogger(logger))
	assert.Same(t, logger, cfg.logger)
}

func TestWithMeterProvider(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	cfg := newOptions(WithMeterProvider(provider))
	assert.Same(t, provider, cfg.meterProvider)
}

func TestWithMeterProviderNilIgnored(t *testing.T) {
	cfg := newOptions(WithMeterProvider(nil))
	assert.NotNil(t, cfg.meterProvider)
}

func TestWithInitialCapacity(t *testing.T) {
	cfg := newOptions(WithInitialCapacity(128))
	assert.Equal(t, 128, cfg.capacity)
}

func TestWithInitialCapacityNegativeIgnored(t *testing.T) {
	cfg := newOptions(WithInitialCapacity(-1))
	assert.Zero(t, cfg.capacity)
}

func TestMultipleOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := newOptions(
		WithName("decoder"),
		WithLogger(logger),
		WithInitialCapacity(64),
	)

	assert.Equal(t, "decoder", cfg.name)
	assert.Same(t, logger, cfg.logger)
	assert.Equal(t, 64, cfg.capacity)
}
