// Package logging предоставляет интерфейс и реализации структурированного логирования.
//
// Логи пишутся только в stderr или файл: stdout зарезервирован для отчётов
// о метриках, которые могут разбираться скриптами.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter (slog из stdlib) и NopLogger.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("задача завершена", "task_id", id, "duration_ms", 150)
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	Error(msg string, args ...any)

	// With возвращает Logger с атрибутами, добавляемыми во все записи.
	//
	//	logger.With("worker", n).Debug("воркер запущен")
	With(args ...any) Logger
}
