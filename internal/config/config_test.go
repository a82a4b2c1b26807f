package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Nil(t, cfg.AppConfig)
	assert.NotNil(t, cfg.Logger)
	assert.Equal(t, getDefaultMetricsConfig(), cfg.MetricsConfig)
	assert.Equal(t, getDefaultLoggingConfig(), cfg.LoggingConfig)
	assert.Equal(t, getDefaultTracingConfig(), cfg.TracingConfig)
	assert.Equal(t, getDefaultDispatchConfig(), cfg.DispatchConfig)
	assert.Equal(t, getDefaultMonitorConfig(), cfg.MonitorConfig)
	assert.Equal(t, getDefaultWorkloadConfig(), cfg.WorkloadConfig)
}

func TestLoad_FromFile(t *testing.T) {
	path := testutil.WriteFile(t, "taskdispatch.yaml", `
metrics:
  enabled: true
  namespace: jobs
dispatch:
  workers: 8
monitor:
  enabled: true
  addr: "127.0.0.1:0"
workload:
  tasks: 50
  failRate: 0.5
  duration: 1ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.AppConfig)

	assert.True(t, cfg.MetricsConfig.Enabled)
	assert.Equal(t, "jobs", cfg.MetricsConfig.Namespace)
	assert.Equal(t, 10*time.Second, cfg.MetricsConfig.Timeout, "незаданное поле берётся из env-default")
	assert.Equal(t, 8, cfg.DispatchConfig.Workers)
	assert.Equal(t, 1024, cfg.DispatchConfig.QueueSize)
	assert.True(t, cfg.MonitorConfig.Enabled)
	assert.Equal(t, "127.0.0.1:0", cfg.MonitorConfig.Addr)
	assert.Equal(t, 50, cfg.WorkloadConfig.Tasks)
	assert.InDelta(t, 0.5, cfg.WorkloadConfig.FailRate, 1e-9)
	assert.Equal(t, time.Millisecond, cfg.WorkloadConfig.Duration)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testutil.WriteFile(t, "taskdispatch.yaml", `
dispatch:
  workers: 8
metrics:
  enabled: false
`)
	t.Setenv("TD_DISPATCH_WORKERS", "16")
	t.Setenv("TD_METRICS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.DispatchConfig.Workers)
	assert.True(t, cfg.MetricsConfig.Enabled)
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	t.Setenv("TD_WORKLOAD_TASKS", "7")
	t.Setenv("TD_MONITOR_POLL_INTERVAL", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.WorkloadConfig.Tasks)
	assert.Equal(t, 250*time.Millisecond, cfg.MonitorConfig.PollInterval)
}

func TestMustLoad_UsesConfigEnv(t *testing.T) {
	path := testutil.WriteFile(t, "taskdispatch.yaml", "workload:\n  tasks: 3\n")
	t.Setenv("TD_CONFIG", path)

	cfg, err := MustLoad()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, 3, cfg.WorkloadConfig.Tasks)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/taskdispatch.yaml")
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_BrokenYAML(t *testing.T) {
	path := testutil.WriteFile(t, "broken.yaml", "dispatch: [workers\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationError(t *testing.T) {
	t.Setenv("TD_WORKLOAD_FAIL_RATE", "1.5")
	t.Setenv("TD_DISPATCH_WORKERS", "-1")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failRate")
	assert.Contains(t, err.Error(), "workers")
}

func TestValidateMetricsConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *MetricsConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"disabled ignores fields", &MetricsConfig{Enabled: false}, false},
		{"enabled without push", &MetricsConfig{Enabled: true, Namespace: "td"}, false},
		{"empty namespace", &MetricsConfig{Enabled: true}, true},
		{"valid push", &MetricsConfig{Enabled: true, Namespace: "td", PushgatewayURL: "http://pg:9091", JobName: "td", Timeout: time.Second}, false},
		{"invalid url", &MetricsConfig{Enabled: true, Namespace: "td", PushgatewayURL: "pg:9091", JobName: "td", Timeout: time.Second}, true},
		{"no job", &MetricsConfig{Enabled: true, Namespace: "td", PushgatewayURL: "http://pg:9091", Timeout: time.Second}, true},
		{"zero timeout", &MetricsConfig{Enabled: true, Namespace: "td", PushgatewayURL: "http://pg:9091", JobName: "td"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMetricsConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLoggingConfig(t *testing.T) {
	assert.NoError(t, validateLoggingConfig(getDefaultLoggingConfig()))

	bad := getDefaultLoggingConfig()
	bad.Level = "trace"
	assert.Error(t, validateLoggingConfig(bad))

	bad = getDefaultLoggingConfig()
	bad.Output = "stdout"
	assert.Error(t, validateLoggingConfig(bad), "stdout зарезервирован для отчётов")
}

func TestValidateTracingConfig(t *testing.T) {
	assert.NoError(t, validateTracingConfig(getDefaultTracingConfig()))

	tc := getDefaultTracingConfig()
	tc.Enabled = true
	assert.Error(t, validateTracingConfig(tc), "endpoint обязателен")

	tc.Endpoint = "http://jaeger:4318"
	assert.NoError(t, validateTracingConfig(tc))

	tc.SamplingRate = 2
	assert.Error(t, validateTracingConfig(tc))
}

func TestValidateMonitorConfig(t *testing.T) {
	mc := getDefaultMonitorConfig()
	assert.NoError(t, validateMonitorConfig(mc))

	mc.Enabled = true
	mc.Addr = ""
	assert.Error(t, validateMonitorConfig(mc))

	mc = getDefaultMonitorConfig()
	mc.PollInterval = -time.Second
	assert.Error(t, validateMonitorConfig(mc))
}

func TestLoadSections_NilAppConfig(t *testing.T) {
	cfg := &Config{}
	l := slog.New(slog.DiscardHandler)

	dc, err := loadDispatchConfig(l, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, dc.Workers)

	wc, err := loadWorkloadConfig(l, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1000, wc.Tasks)
}
