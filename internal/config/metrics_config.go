package config

import (
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/urlutil"

	"github.com/ilyakaznacheev/cleanenv"
)

// MetricsConfig содержит настройки сбора метрик исполнения задач.
type MetricsConfig struct {
	// Enabled: выбирает активный сборщик. При false используется неактивный.
	Enabled bool `yaml:"enabled" env:"TD_METRICS_ENABLED" env-default:"false"`

	// Namespace: префикс имён Prometheus метрик.
	Namespace string `yaml:"namespace" env:"TD_METRICS_NAMESPACE" env-default:"taskdispatch"`

	// PushgatewayURL: URL Prometheus Pushgateway. Если пусто, push отключён.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"TD_METRICS_PUSHGATEWAY_URL"`

	// JobName: имя job для группировки метрик в Pushgateway.
	JobName string `yaml:"jobName" env:"TD_METRICS_JOB_NAME" env-default:"taskdispatch"`

	// Timeout: таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"TD_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel: переопределение instance label. Если пусто, используется hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"TD_METRICS_INSTANCE"`
}

// isMetricsConfigPresent проверяет, задана ли секция метрик в файле.
func isMetricsConfigPresent(cfg *MetricsConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.Namespace != "" || cfg.PushgatewayURL != ""
}

// getDefaultMetricsConfig возвращает конфигурацию метрик по умолчанию.
// Метрики отключены по умолчанию.
func getDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Enabled:   false,
		Namespace: "taskdispatch",
		JobName:   "taskdispatch",
		Timeout:   10 * time.Second,
	}
}

// loadMetricsConfig загружает конфигурацию метрик из AppConfig или значений по умолчанию.
// Переменные окружения TD_METRICS_* переопределяют оба источника.
func loadMetricsConfig(l *slog.Logger, cfg *Config) (*MetricsConfig, error) {
	if cfg.AppConfig != nil && isMetricsConfigPresent(&cfg.AppConfig.Metrics) {
		metricsConfig := cfg.AppConfig.Metrics
		if err := cleanenv.ReadEnv(&metricsConfig); err != nil {
			l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Info("Metrics конфигурация загружена из файла",
			slog.Bool("enabled", metricsConfig.Enabled),
			slog.String("pushgateway_url", urlutil.MaskURL(metricsConfig.PushgatewayURL)),
		)
		return &metricsConfig, nil
	}

	metricsConfig := getDefaultMetricsConfig()
	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	l.Debug("Metrics конфигурация: используются значения по умолчанию",
		slog.Bool("enabled", metricsConfig.Enabled),
	)
	return metricsConfig, nil
}

// validateMetricsConfig проверяет обязательные поля при включённых метриках.
func validateMetricsConfig(mc *MetricsConfig) error {
	if mc == nil || !mc.Enabled {
		return nil
	}
	if mc.Namespace == "" {
		return errors.New("metrics: namespace обязателен при enabled=true")
	}
	if mc.PushgatewayURL == "" {
		return nil
	}
	if u, err := url.Parse(mc.PushgatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("metrics: pushgatewayUrl должен быть валидным URL")
	}
	if mc.JobName == "" {
		return errors.New("metrics: jobName обязателен при заданном pushgatewayUrl")
	}
	if mc.Timeout <= 0 {
		return errors.New("metrics: timeout должен быть положительным")
	}
	return nil
}
