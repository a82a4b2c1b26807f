package logging

import "log/slog"

// SlogAdapter реализует Logger поверх *slog.Logger.
// Основная production реализация.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает logger. При nil используется slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With возвращает новый SlogAdapter с добавленными атрибутами.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// Slog возвращает нижележащий *slog.Logger для кода, которому нужен
// именно stdlib логгер (например, http.Server.ErrorLog).
func (s *SlogAdapter) Slog() *slog.Logger {
	return s.logger
}
