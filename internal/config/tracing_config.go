package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"TD_TRACING_ENABLED" env-default:"false"`

	// Endpoint: URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"TD_TRACING_ENDPOINT"`

	// ServiceName: имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"TD_TRACING_SERVICE_NAME" env-default:"taskdispatch"`

	// Environment: окружение (production, staging, development).
	Environment string `yaml:"environment" env:"TD_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure: использовать HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"TD_TRACING_INSECURE" env-default:"true"`

	// Timeout: таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"TD_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate: доля сэмплируемых трейсов. Каждая задача получает отдельный span.
	SamplingRate float64 `yaml:"samplingRate" env:"TD_TRACING_SAMPLING_RATE" env-default:"0.1"`
}

// isTracingConfigPresent проверяет, задана ли секция трейсинга в файле.
func isTracingConfigPresent(cfg *TracingConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.Endpoint != ""
}

// getDefaultTracingConfig возвращает конфигурацию трейсинга по умолчанию.
// Трейсинг отключён по умолчанию.
func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		Enabled:      false,
		ServiceName:  "taskdispatch",
		Environment:  "production",
		Insecure:     true,
		Timeout:      5 * time.Second,
		SamplingRate: 0.1,
	}
}

// validateTracingConfig проверяет обязательные поля при включённом трейсинге.
func validateTracingConfig(tc *TracingConfig) error {
	if tc == nil || !tc.Enabled {
		return nil
	}
	if tc.Endpoint == "" {
		return fmt.Errorf("tracing: endpoint обязателен при enabled=true")
	}
	if tc.ServiceName == "" {
		return fmt.Errorf("tracing: service name обязателен при enabled=true")
	}
	if tc.Timeout <= 0 {
		return fmt.Errorf("tracing: timeout должен быть положительным")
	}
	if tc.SamplingRate < 0.0 || tc.SamplingRate > 1.0 {
		return fmt.Errorf("tracing: sampling rate должен быть от 0.0 до 1.0, получено: %g", tc.SamplingRate)
	}
	return nil
}

// loadTracingConfig загружает конфигурацию трейсинга из AppConfig или значений по умолчанию.
// Переменные окружения TD_TRACING_* переопределяют оба источника.
func loadTracingConfig(l *slog.Logger, cfg *Config) (*TracingConfig, error) {
	if cfg.AppConfig != nil && isTracingConfigPresent(&cfg.AppConfig.Tracing) {
		tracingConfig := cfg.AppConfig.Tracing
		if err := cleanenv.ReadEnv(&tracingConfig); err != nil {
			l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Info("Tracing конфигурация загружена из файла",
			slog.Bool("enabled", tracingConfig.Enabled),
			slog.String("endpoint", tracingConfig.Endpoint),
		)
		return &tracingConfig, nil
	}

	tracingConfig := getDefaultTracingConfig()
	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	return tracingConfig, nil
}
