package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger создаёт Logger по конфигурации.
//
// Вывод (config.Output):
//   - "stderr" или "": os.Stderr
//   - "file": файл с ротацией через lumberjack (MaxSize, MaxBackups, MaxAge, Compress)
//
// Неизвестный output или ошибка подготовки файла, предупреждение в stderr
// и запись в stderr.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = newRotatingWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		bootstrapWarn("неизвестный logging output %q, используется stderr", config.Output)
		w = os.Stderr
	}

	return NewLoggerWithWriter(config, w)
}

// newRotatingWriter создаёт writer с ротацией, при необходимости создаёт директорию.
func newRotatingWriter(config Config) io.Writer {
	if config.FilePath == "" {
		bootstrapWarn("logging output=file, но путь к файлу пуст, используется stderr")
		return os.Stderr
	}

	if dir := filepath.Dir(config.FilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			bootstrapWarn("не удалось создать директорию логов %q: %v, используется stderr", dir, err)
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// bootstrapWarn пишет предупреждение напрямую в stderr: логгер ещё не создан.
func bootstrapWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...) //nolint:errcheck // bootstrap stderr
}

// NewLoggerWithWriter создаёт Logger, пишущий в w.
// Используется в тестах и там, где writer выбран заранее.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(config.Level)}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// ParseLevel конвертирует строковый уровень в slog.Level.
// Неизвестное значение: slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
