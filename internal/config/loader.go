package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Kargones/taskdispatch/internal/constants"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrConfigFileNotFound: файл из TD_CONFIG не существует.
var ErrConfigFileNotFound = errors.New("config: файл конфигурации не найден")

// MustLoad загружает конфигурацию по пути из TD_CONFIG.
// Несмотря на имя, не вызывает panic: ошибка возвращается вызывающему.
func MustLoad() (*Config, error) {
	return Load(os.Getenv(constants.ConfigPathEnv))
}

// Load загружает конфигурацию из файла path (может быть пустым) и переменных окружения.
// Возвращает ошибку, если файл задан, но не читается, или если итоговая
// конфигурация не проходит валидацию.
func Load(path string) (*Config, error) {
	l := bootstrapLogger()
	cfg := &Config{ConfigPath: path, Logger: l}

	appConfig, err := loadAppConfig(l, path)
	if err != nil {
		return nil, err
	}
	cfg.AppConfig = appConfig

	// Секции загружаются независимо; ошибка одной не мешает остальным
	if cfg.MetricsConfig, err = loadMetricsConfig(l, cfg); err != nil {
		return nil, err
	}
	if cfg.LoggingConfig, err = loadLoggingConfig(l, cfg); err != nil {
		return nil, err
	}
	if cfg.TracingConfig, err = loadTracingConfig(l, cfg); err != nil {
		return nil, err
	}
	if cfg.DispatchConfig, err = loadDispatchConfig(l, cfg); err != nil {
		return nil, err
	}
	if cfg.MonitorConfig, err = loadMonitorConfig(l, cfg); err != nil {
		return nil, err
	}
	if cfg.WorkloadConfig, err = loadWorkloadConfig(l, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет все секции и возвращает объединённую ошибку.
func (c *Config) Validate() error {
	return errors.Join(
		validateMetricsConfig(c.MetricsConfig),
		validateLoggingConfig(c.LoggingConfig),
		validateTracingConfig(c.TracingConfig),
		validateDispatchConfig(c.DispatchConfig),
		validateMonitorConfig(c.MonitorConfig),
		validateWorkloadConfig(c.WorkloadConfig),
	)
}

// loadAppConfig читает YAML файл. Пустой path, не ошибка, возвращается nil.
// cleanenv.ReadConfig также применяет env переопределения к секциям файла.
func loadAppConfig(l *slog.Logger, path string) (*AppConfig, error) {
	if path == "" {
		l.Debug("Файл конфигурации не задан, используются переменные окружения",
			slog.String("env", constants.ConfigPathEnv),
		)
		return nil, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	appConfig := &AppConfig{}
	if err := cleanenv.ReadConfig(path, appConfig); err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию %s: %w", path, err)
	}

	l.Info("Конфигурация загружена из файла", slog.String("path", path))
	return appConfig, nil
}

// bootstrapLogger: логгер этапа загрузки. Пишет в stderr: stdout занят отчётами.
func bootstrapLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("TD_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("component", "config"))
}
