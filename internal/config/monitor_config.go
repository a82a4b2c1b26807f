package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MonitorConfig содержит настройки HTTP мониторинга и периодического логирования метрик.
type MonitorConfig struct {
	// Enabled: поднимать ли HTTP сервер с /healthz, /metrics и /ws.
	Enabled bool `yaml:"enabled" env:"TD_MONITOR_ENABLED" env-default:"false"`

	// Addr: адрес HTTP сервера.
	Addr string `yaml:"addr" env:"TD_MONITOR_ADDR" env-default:":9464"`

	// PollInterval: период логирования среза метрик. При 0 срез не логируется.
	PollInterval time.Duration `yaml:"pollInterval" env:"TD_MONITOR_POLL_INTERVAL" env-default:"5s"`

	// StreamInterval: период отправки срезов в /ws.
	StreamInterval time.Duration `yaml:"streamInterval" env:"TD_MONITOR_STREAM_INTERVAL" env-default:"1s"`

	// ShutdownTimeout: таймаут graceful shutdown HTTP сервера.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"TD_MONITOR_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

func getDefaultMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		Enabled:         false,
		Addr:            ":9464",
		PollInterval:    5 * time.Second,
		StreamInterval:  time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// loadMonitorConfig загружает конфигурацию мониторинга.
// Переменные окружения TD_MONITOR_* переопределяют значения из файла.
func loadMonitorConfig(l *slog.Logger, cfg *Config) (*MonitorConfig, error) {
	monitorConfig := getDefaultMonitorConfig()
	if cfg.AppConfig != nil && (cfg.AppConfig.Monitor != MonitorConfig{}) {
		fileConfig := cfg.AppConfig.Monitor
		monitorConfig = &fileConfig
	}

	if err := cleanenv.ReadEnv(monitorConfig); err != nil {
		l.Warn("Ошибка загрузки Monitor конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	return monitorConfig, nil
}

func validateMonitorConfig(mc *MonitorConfig) error {
	if mc == nil {
		return nil
	}
	if mc.PollInterval < 0 {
		return errors.New("monitor: pollInterval не может быть отрицательным")
	}
	if !mc.Enabled {
		return nil
	}
	if mc.Addr == "" {
		return errors.New("monitor: addr обязателен при enabled=true")
	}
	if mc.StreamInterval <= 0 {
		return errors.New("monitor: streamInterval должен быть положительным")
	}
	if mc.ShutdownTimeout <= 0 {
		return errors.New("monitor: shutdownTimeout должен быть положительным")
	}
	return nil
}
