package di

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Kargones/taskdispatch/internal/config"
	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/output"
	"github.com/Kargones/taskdispatch/internal/pkg/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"nil config", nil},
		{"nil logging section", &config.Config{}},
		{"json debug", &config.Config{LoggingConfig: &config.LoggingConfig{Level: "debug", Format: "json"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ProvideLogger(tt.cfg)
			require.NotNil(t, logger)
			assert.NotPanics(t, func() { logger.Info("проверка") })
		})
	}
}

func TestProvideOutputWriter(t *testing.T) {
	tests := []struct {
		format string
		want   output.Writer
	}{
		{"", output.NewTextWriter()},
		{"text", output.NewTextWriter()},
		{"json", output.NewJSONWriter()},
		{"yaml", output.NewYAMLWriter()},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Setenv(OutputFormatEnv, tt.format)
			assert.IsType(t, tt.want, ProvideOutputWriter())
		})
	}
}

func TestProvideTraceID_Format(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), ProvideTraceID())
	assert.NotEqual(t, ProvideTraceID(), ProvideTraceID())
}

func TestProvideMetricsConfig(t *testing.T) {
	assert.Equal(t, metrics.DefaultConfig(), ProvideMetricsConfig(nil))

	cfg := &config.Config{MetricsConfig: &config.MetricsConfig{
		Enabled:        true,
		Namespace:      "jobs",
		PushgatewayURL: "http://pg:9091",
		JobName:        "nightly",
		Timeout:        3 * time.Second,
		InstanceLabel:  "ci-1",
	}}
	got := ProvideMetricsConfig(cfg)

	assert.True(t, got.Enabled)
	assert.Equal(t, "jobs", got.Namespace)
	assert.Equal(t, "http://pg:9091", got.PushgatewayURL)
	assert.Equal(t, "nightly", got.JobName)
	assert.Equal(t, 3*time.Second, got.Timeout)
	assert.Equal(t, "ci-1", got.InstanceLabel)
}

func TestProvideMetricsCollector_SelectsVariant(t *testing.T) {
	logger := logging.NewNopLogger()

	disabled := ProvideMetricsCollector(metrics.DefaultConfig(), logger)
	assert.Same(t, metrics.Inactive(), disabled)

	enabledCfg := metrics.DefaultConfig()
	enabledCfg.Enabled = true
	enabled := ProvideMetricsCollector(enabledCfg, logger)
	assert.IsType(t, &metrics.ActiveCollector{}, enabled)
}

func TestProvideMetricsCollector_InvalidConfigFallsBack(t *testing.T) {
	cfg := metrics.DefaultConfig()
	cfg.Enabled = true
	cfg.Namespace = ""

	assert.Same(t, metrics.Inactive(), ProvideMetricsCollector(cfg, logging.NewNopLogger()))
}

func TestProvideRegistry(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	registry := ProvideRegistry(collector, metrics.DefaultConfig(), logging.NewNopLogger())

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestProvideTracerProvider_Disabled(t *testing.T) {
	shutdown := ProvideTracerProvider(&config.Config{TracingConfig: &config.TracingConfig{Enabled: false}}, logging.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	shutdown = ProvideTracerProvider(nil, logging.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestProvideMonitorServer(t *testing.T) {
	logger := logging.NewNopLogger()
	collector := metrics.Inactive()
	registry := ProvideRegistry(collector, metrics.DefaultConfig(), logger)

	assert.Nil(t, ProvideMonitorServer(nil, collector, registry, logger))
	assert.Nil(t, ProvideMonitorServer(&config.Config{MonitorConfig: &config.MonitorConfig{Enabled: false}}, collector, registry, logger))

	server := ProvideMonitorServer(&config.Config{MonitorConfig: &config.MonitorConfig{Enabled: true, Addr: ":0"}}, collector, registry, logger)
	assert.NotNil(t, server)
}

func TestProvideDispatcher_UsesCollector(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	cfg := &config.Config{DispatchConfig: &config.DispatchConfig{Workers: 2, QueueSize: 8}}

	d := ProvideDispatcher(cfg, collector, logging.NewNopLogger())
	assert.Same(t, collector, d.Collector())
}

func TestProvideProgress(t *testing.T) {
	t.Setenv(progress.ShowProgressEnv, "false")
	assert.IsType(t, &progress.NoopProgress{}, ProvideProgress(logging.NewNopLogger()))

	t.Setenv(progress.ShowProgressEnv, "")
	assert.NotNil(t, ProvideProgress(logging.NewNopLogger()))
}
