// Package config загружает конфигурацию taskdispatch: опциональный YAML файл
// (путь в TD_CONFIG) и переопределения через переменные окружения TD_*.
package config

import (
	"log/slog"
)

// AppConfig: содержимое YAML файла конфигурации.
// Каждая секция необязательна: отсутствующая секция заполняется значениями
// по умолчанию и переменными окружения.
type AppConfig struct {
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Workload WorkloadConfig `yaml:"workload"`
}

// Config: итоговая конфигурация приложения после слияния файла, env и defaults.
type Config struct {
	// ConfigPath: путь к YAML файлу, пустой если файл не задан.
	ConfigPath string

	// AppConfig: разобранный YAML файл, nil если файл не задан.
	AppConfig *AppConfig

	MetricsConfig  *MetricsConfig
	LoggingConfig  *LoggingConfig
	TracingConfig  *TracingConfig
	DispatchConfig *DispatchConfig
	MonitorConfig  *MonitorConfig
	WorkloadConfig *WorkloadConfig

	// Logger: bootstrap логгер для этапа загрузки конфигурации.
	// Рабочий логгер создаётся в di.ProvideLogger.
	Logger *slog.Logger
}
