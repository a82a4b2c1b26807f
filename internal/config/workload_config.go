package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// WorkloadConfig описывает синтетическую нагрузку команды run.
type WorkloadConfig struct {
	// Tasks: количество задач.
	Tasks int `yaml:"tasks" env:"TD_WORKLOAD_TASKS" env-default:"1000"`

	// FailRate: доля задач, возвращающих ошибку (0.0–1.0).
	FailRate float64 `yaml:"failRate" env:"TD_WORKLOAD_FAIL_RATE" env-default:"0.05"`

	// Duration: время исполнения одной задачи.
	Duration time.Duration `yaml:"duration" env:"TD_WORKLOAD_DURATION" env-default:"10ms"`
}

func getDefaultWorkloadConfig() *WorkloadConfig {
	return &WorkloadConfig{
		Tasks:    1000,
		FailRate: 0.05,
		Duration: 10 * time.Millisecond,
	}
}

// loadWorkloadConfig загружает конфигурацию нагрузки.
// Переменные окружения TD_WORKLOAD_* переопределяют значения из файла.
func loadWorkloadConfig(l *slog.Logger, cfg *Config) (*WorkloadConfig, error) {
	workloadConfig := getDefaultWorkloadConfig()
	if cfg.AppConfig != nil && (cfg.AppConfig.Workload != WorkloadConfig{}) {
		fileConfig := cfg.AppConfig.Workload
		workloadConfig = &fileConfig
	}

	if err := cleanenv.ReadEnv(workloadConfig); err != nil {
		l.Warn("Ошибка загрузки Workload конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}
	return workloadConfig, nil
}

func validateWorkloadConfig(wc *WorkloadConfig) error {
	if wc == nil {
		return nil
	}
	if wc.Tasks < 0 {
		return errors.New("workload: tasks не может быть отрицательным")
	}
	if wc.FailRate < 0.0 || wc.FailRate > 1.0 {
		return errors.New("workload: failRate должен быть от 0.0 до 1.0")
	}
	if wc.Duration < 0 {
		return errors.New("workload: duration не может быть отрицательным")
	}
	return nil
}
