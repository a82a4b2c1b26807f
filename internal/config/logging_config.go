package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"

	"github.com/ilyakaznacheev/cleanenv"
)

// LoggingConfig содержит настройки логирования.
// Значения по умолчанию совпадают с logging.DefaultXxx.
type LoggingConfig struct {
	// Level: уровень логирования (debug, info, warn, error).
	Level string `yaml:"level" env:"TD_LOG_LEVEL" env-default:"info"`

	// Format: формат логов (json, text).
	Format string `yaml:"format" env:"TD_LOG_FORMAT" env-default:"text"`

	// Output: вывод логов (stderr, file).
	Output string `yaml:"output" env:"TD_LOG_OUTPUT" env-default:"stderr"`

	// FilePath: путь к файлу логов при output=file.
	FilePath string `yaml:"filePath" env:"TD_LOG_FILE_PATH"`

	// MaxSize: максимальный размер файла лога в MB.
	MaxSize int `yaml:"maxSize" env:"TD_LOG_MAX_SIZE" env-default:"100"`

	// MaxBackups: максимальное количество backup файлов.
	MaxBackups int `yaml:"maxBackups" env:"TD_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge: максимальный возраст backup файлов в днях.
	MaxAge int `yaml:"maxAge" env:"TD_LOG_MAX_AGE" env-default:"7"`

	// Compress: сжимать ли backup файлы.
	// TODO: env-default:"true" перекрывает явный compress: false из YAML,
	// если поле не задано в env. Нужен *bool или отдельный флаг presence.
	Compress bool `yaml:"compress" env:"TD_LOG_COMPRESS" env-default:"true"`
}

// getDefaultLoggingConfig возвращает конфигурацию логирования по умолчанию.
func getDefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:      logging.DefaultLevel,
		Format:     logging.DefaultFormat,
		Output:     logging.DefaultOutput,
		FilePath:   logging.DefaultFilePath,
		MaxSize:    logging.DefaultMaxSize,
		MaxBackups: logging.DefaultMaxBackups,
		MaxAge:     logging.DefaultMaxAge,
		Compress:   logging.DefaultCompress,
	}
}

// loadLoggingConfig загружает конфигурацию логирования из AppConfig или значений по умолчанию.
// Переменные окружения TD_LOG_* переопределяют оба источника.
func loadLoggingConfig(l *slog.Logger, cfg *Config) (*LoggingConfig, error) {
	if cfg.AppConfig != nil && (cfg.AppConfig.Logging != LoggingConfig{}) {
		loggingConfig := cfg.AppConfig.Logging
		if err := cleanenv.ReadEnv(&loggingConfig); err != nil {
			l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
				slog.String("error", err.Error()),
			)
		}
		l.Info("Logging конфигурация загружена из файла",
			slog.String("level", loggingConfig.Level),
			slog.String("format", loggingConfig.Format),
		)
		return &loggingConfig, nil
	}

	loggingConfig := getDefaultLoggingConfig()
	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	l.Debug("Logging конфигурация: используются значения по умолчанию",
		slog.String("level", loggingConfig.Level),
	)
	return loggingConfig, nil
}

// validateLoggingConfig проверяет допустимые значения перечислимых полей.
func validateLoggingConfig(lc *LoggingConfig) error {
	if lc == nil {
		return nil
	}
	levels := []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
	if !slices.Contains(levels, lc.Level) {
		return fmt.Errorf("logging: неизвестный уровень %q", lc.Level)
	}
	if lc.Format != logging.FormatJSON && lc.Format != logging.FormatText {
		return fmt.Errorf("logging: неизвестный формат %q", lc.Format)
	}
	if lc.Output != logging.OutputStderr && lc.Output != logging.OutputFile {
		return fmt.Errorf("logging: неизвестный вывод %q", lc.Output)
	}
	return nil
}
