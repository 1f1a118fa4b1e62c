package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("defaults without environment", func(t *testing.T) {
		t.Setenv("INSTRUMENTATION_ENABLED", "")
		t.Setenv("METRICS_EXPORTER", "")
		t.Setenv("TRACING_EXPORTER", "")
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

		cfg := DefaultConfig()
		assert.Equal(t, "aireply", cfg.ServiceName)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, ExporterNone, cfg.MetricsExporter)
		assert.Equal(t, ExporterNone, cfg.TracingExporter)
		assert.InDelta(t, 0.1, cfg.TraceSamplingRate, 1e-9)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("INSTRUMENTATION_ENABLED", "true")
		t.Setenv("METRICS_EXPORTER", "stdout")
		t.Setenv("OTEL_SERVICE_NAME", "aireply-dev")
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

		cfg := DefaultConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, ExporterStdout, cfg.MetricsExporter)
		assert.Equal(t, "aireply-dev", cfg.ServiceName)
		assert.InDelta(t, 0.5, cfg.TraceSamplingRate, 1e-9)
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		t.Setenv("INSTRUMENTATION_ENABLED", "maybe")
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "lots")

		cfg := DefaultConfig()
		assert.False(t, cfg.Enabled)
		assert.InDelta(t, 0.1, cfg.TraceSamplingRate, 1e-9)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		ServiceName:       "aireply",
		MetricsExporter:   ExporterNone,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "sampling rate out of range",
			mutate:  func(c *Config) { c.TraceSamplingRate = 1.5 },
			wantErr: "sampling rate",
		},
		{
			name:    "unknown metrics exporter",
			mutate:  func(c *Config) { c.MetricsExporter = "graphite" },
			wantErr: "invalid metrics exporter",
		},
		{
			name:    "unknown tracing exporter",
			mutate:  func(c *Config) { c.TracingExporter = "jaeger" },
			wantErr: "invalid tracing exporter",
		},
		{
			name:    "otlp tracing without endpoint",
			mutate:  func(c *Config) { c.TracingExporter = ExporterOTLP },
			wantErr: "OTLP endpoint is required",
		},
		{
			name:    "otlp metrics without endpoint",
			mutate:  func(c *Config) { c.MetricsExporter = ExporterOTLP },
			wantErr: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDisabledProviderIsNoOp(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())

	// The zero-value recorder must accept calls without a meter behind it.
	provider.Metrics().RecordMailOperation(context.Background(), "fetch_inbox", StatusSuccess, time.Second)
	provider.Metrics().RecordGenerationOperation(context.Background(), "replies", StatusError, time.Second)
	provider.Metrics().IncrementActiveSessions(context.Background())
	provider.Metrics().DecrementActiveSessions(context.Background())

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(assert.AnError))
}
