// Package output форматирует результаты запуска (отчёты о метриках) в JSON,
// YAML и человекочитаемый текст.
package output

// StatusSuccess и StatusError: возможные значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion: версия формата Result.
const APIVersion = "v1"

// Result: структурированный результат команды.
type Result struct {
	// Status: "success" или "error".
	Status string `json:"status" yaml:"status"`

	// Command: имя выполненной команды.
	Command string `json:"command" yaml:"command"`

	// Data: payload команды (например, *SnapshotReport).
	Data any `json:"data,omitempty" yaml:"data,omitempty"`

	// Error: информация об ошибке (только при status="error").
	Error *ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`

	// Metadata: метаданные выполнения.
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Summary не сериализуется напрямую: JSON и YAML writers копируют его
	// в Metadata.Summary, TextWriter выводит отдельным блоком.
	Summary *SummaryInfo `json:"-" yaml:"-"`
}

// ErrorInfo: ошибка в структурированном виде.
// Message НЕ ДОЛЖЕН содержать секреты.
type ErrorInfo struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Metadata содержит метаданные выполнения.
type Metadata struct {
	// DurationMs: время выполнения в миллисекундах.
	DurationMs int64 `json:"duration_ms" yaml:"durationMs"`

	// TraceID: идентификатор для корреляции с логами и трейсами.
	TraceID string `json:"trace_id,omitempty" yaml:"traceId,omitempty"`

	// APIVersion: версия формата.
	APIVersion string `json:"api_version" yaml:"apiVersion"`

	// Summary заполняется из Result.Summary при сериализации.
	Summary *SummaryInfo `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// withSummary возвращает shallow copy result с Summary, перенесённым в Metadata.
// Входной result не мутируется.
func withSummary(result *Result) *Result {
	out := *result
	if result.Summary != nil && result.Metadata != nil {
		meta := *result.Metadata
		meta.Summary = result.Summary
		out.Metadata = &meta
	}
	return &out
}
