package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DispatchConfig содержит настройки диспетчера задач.
type DispatchConfig struct {
	// Workers: количество воркеров.
	Workers int `yaml:"workers" env:"TD_DISPATCH_WORKERS" env-default:"4"`

	// QueueSize: ёмкость очереди. При переполнении Submit возвращает ошибку.
	QueueSize int `yaml:"queueSize" env:"TD_DISPATCH_QUEUE_SIZE" env-default:"1024"`

	// StopTimeout: сколько ждать дренажа очереди при остановке.
	StopTimeout time.Duration `yaml:"stopTimeout" env:"TD_DISPATCH_STOP_TIMEOUT" env-default:"30s"`
}

func getDefaultDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		Workers:     4,
		QueueSize:   1024,
		StopTimeout: 30 * time.Second,
	}
}

// loadDispatchConfig загружает конфигурацию диспетчера.
// Переменные окружения TD_DISPATCH_* переопределяют значения из файла.
func loadDispatchConfig(l *slog.Logger, cfg *Config) (*DispatchConfig, error) {
	dispatchConfig := getDefaultDispatchConfig()
	if cfg.AppConfig != nil && (cfg.AppConfig.Dispatch != DispatchConfig{}) {
		fileConfig := cfg.AppConfig.Dispatch
		dispatchConfig = &fileConfig
	}

	if err := cleanenv.ReadEnv(dispatchConfig); err != nil {
		l.Warn("Ошибка загрузки Dispatch конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	l.Debug("Dispatch конфигурация загружена",
		slog.Int("workers", dispatchConfig.Workers),
		slog.Int("queue_size", dispatchConfig.QueueSize),
	)
	return dispatchConfig, nil
}

func validateDispatchConfig(dc *DispatchConfig) error {
	if dc == nil {
		return nil
	}
	if dc.Workers <= 0 {
		return errors.New("dispatch: workers должен быть положительным")
	}
	if dc.QueueSize <= 0 {
		return errors.New("dispatch: queueSize должен быть положительным")
	}
	if dc.StopTimeout <= 0 {
		return errors.New("dispatch: stopTimeout должен быть положительным")
	}
	return nil
}
