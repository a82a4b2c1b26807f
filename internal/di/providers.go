package di

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/taskdispatch/internal/config"
	"github.com/Kargones/taskdispatch/internal/constants"
	"github.com/Kargones/taskdispatch/internal/dispatch"
	"github.com/Kargones/taskdispatch/internal/monitor"
	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/output"
	"github.com/Kargones/taskdispatch/internal/pkg/progress"
	"github.com/Kargones/taskdispatch/internal/pkg/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

// OutputFormatEnv: переменная окружения с форматом отчёта (json, yaml, text).
const OutputFormatEnv = "TD_OUTPUT_FORMAT"

// defaultPollInterval совпадает с env-default monitor.pollInterval.
const defaultPollInterval = 5 * time.Second

// ProvideLogger создаёт Logger на основе LoggingConfig.
// Пустые поля и nil Config заменяются значениями logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()

	if cfg != nil && cfg.LoggingConfig != nil {
		if cfg.LoggingConfig.Level != "" {
			logCfg.Level = cfg.LoggingConfig.Level
		}
		if cfg.LoggingConfig.Format != "" {
			logCfg.Format = cfg.LoggingConfig.Format
		}
		if cfg.LoggingConfig.Output != "" {
			logCfg.Output = cfg.LoggingConfig.Output
		}
		if cfg.LoggingConfig.FilePath != "" {
			logCfg.FilePath = cfg.LoggingConfig.FilePath
		}
		// Размер 0 не имеет смысла для lumberjack, используется default
		if cfg.LoggingConfig.MaxSize > 0 {
			logCfg.MaxSize = cfg.LoggingConfig.MaxSize
		}
		if cfg.LoggingConfig.MaxBackups > 0 {
			logCfg.MaxBackups = cfg.LoggingConfig.MaxBackups
		}
		if cfg.LoggingConfig.MaxAge > 0 {
			logCfg.MaxAge = cfg.LoggingConfig.MaxAge
		}
		logCfg.Compress = cfg.LoggingConfig.Compress
	}

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт Writer по TD_OUTPUT_FORMAT.
// Пустое значение: TextWriter.
func ProvideOutputWriter() output.Writer {
	format := os.Getenv(OutputFormatEnv)
	if format == "" {
		format = output.FormatText
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует trace_id запуска: 32-символьный hex.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsConfig конвертирует config.MetricsConfig в metrics.Config.
// При nil секции метрики отключены.
func ProvideMetricsConfig(cfg *config.Config) metrics.Config {
	metricsCfg := metrics.DefaultConfig()
	if cfg == nil || cfg.MetricsConfig == nil {
		return metricsCfg
	}

	metricsCfg.Enabled = cfg.MetricsConfig.Enabled
	metricsCfg.Namespace = cfg.MetricsConfig.Namespace
	metricsCfg.PushgatewayURL = cfg.MetricsConfig.PushgatewayURL
	metricsCfg.JobName = cfg.MetricsConfig.JobName
	metricsCfg.Timeout = cfg.MetricsConfig.Timeout
	metricsCfg.InstanceLabel = cfg.MetricsConfig.InstanceLabel
	return metricsCfg
}

// ProvideMetricsCollector выбирает вариант сборщика по metrics.Config.Enabled.
// При ошибке создания возвращает неактивный сборщик и логирует ошибку.
func ProvideMetricsCollector(metricsCfg metrics.Config, logger logging.Logger) metrics.Collector {
	collector, err := metrics.NewCollector(metricsCfg, logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется неактивный сборщик",
			slog.String("error", err.Error()),
		)
		return metrics.Inactive()
	}
	return collector
}

// ProvideRegistry создаёт Prometheus registry с экспортёром над collector.
// При ошибке регистрации возвращает пустой registry.
func ProvideRegistry(collector metrics.Collector, metricsCfg metrics.Config, logger logging.Logger) *prometheus.Registry {
	registry, err := metrics.NewRegistry(collector, metricsCfg.Namespace)
	if err != nil {
		logger.Error("ошибка регистрации Prometheus экспортёра",
			slog.String("error", err.Error()),
		)
		return prometheus.NewRegistry()
	}
	return registry
}

// ProvideTracerProvider инициализирует OTel TracerProvider и возвращает shutdown.
// При nil секции, выключенном трейсинге или ошибке возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := tracing.Config{
		Enabled:      cfg.TracingConfig.Enabled,
		Endpoint:     cfg.TracingConfig.Endpoint,
		ServiceName:  cfg.TracingConfig.ServiceName,
		Version:      constants.Version,
		Environment:  cfg.TracingConfig.Environment,
		Insecure:     cfg.TracingConfig.Insecure,
		Timeout:      cfg.TracingConfig.Timeout,
		SamplingRate: cfg.TracingConfig.SamplingRate,
	}

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideDispatcher создаёт Dispatcher над collector по DispatchConfig.
func ProvideDispatcher(cfg *config.Config, collector metrics.Collector, logger logging.Logger) *dispatch.Dispatcher {
	var opts []dispatch.Option
	if cfg != nil && cfg.DispatchConfig != nil {
		opts = append(opts,
			dispatch.WithWorkers(cfg.DispatchConfig.Workers),
			dispatch.WithQueueSize(cfg.DispatchConfig.QueueSize),
		)
	}
	return dispatch.New(collector, logger, opts...)
}

// ProvidePoller создаёт Poller с интервалом monitor.pollInterval.
func ProvidePoller(cfg *config.Config, collector metrics.Collector, logger logging.Logger) *monitor.Poller {
	interval := defaultPollInterval
	if cfg != nil && cfg.MonitorConfig != nil {
		interval = cfg.MonitorConfig.PollInterval
	}
	return monitor.NewPoller(collector, logger, interval)
}

// ProvideMonitorServer создаёт HTTP сервер мониторинга.
// Возвращает nil, если мониторинг выключен.
func ProvideMonitorServer(cfg *config.Config, collector metrics.Collector, registry *prometheus.Registry, logger logging.Logger) *monitor.Server {
	if cfg == nil || cfg.MonitorConfig == nil || !cfg.MonitorConfig.Enabled {
		return nil
	}
	return monitor.NewServer(collector, registry, logger, monitor.ServerConfig{
		Addr:            cfg.MonitorConfig.Addr,
		StreamInterval:  cfg.MonitorConfig.StreamInterval,
		ShutdownTimeout: cfg.MonitorConfig.ShutdownTimeout,
	})
}

// ProvidePusher создаёт Pusher. Без pushgatewayUrl Push ничего не делает.
func ProvidePusher(metricsCfg metrics.Config, registry *prometheus.Registry, logger logging.Logger) *monitor.Pusher {
	return monitor.NewPusher(metricsCfg, registry, logger)
}

// ProvideProgress создаёт индикатор прогресса прогона в stderr.
// stdout занят отчётом, поэтому прогресс туда не пишется.
func ProvideProgress(logger logging.Logger) progress.Progress {
	return progress.New(progress.Options{
		Output: os.Stderr,
		Logger: logger,
	})
}
