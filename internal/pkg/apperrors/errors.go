// Package apperrors предоставляет структурированные ошибки приложения.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
const (
	// Category: CONFIG: ошибки загрузки и валидации конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: DISPATCH: ошибки диспетчера задач.
	ErrDispatchStart  = "DISPATCH.START_FAILED"
	ErrDispatchSubmit = "DISPATCH.SUBMIT_FAILED"
	ErrDispatchStop   = "DISPATCH.STOP_FAILED"

	// Category: MONITOR: ошибки HTTP мониторинга.
	ErrMonitorServe = "MONITOR.SERVE_FAILED"

	// Category: OUTPUT: ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"

	// ErrUnknown: код для ошибок, не обёрнутых в AppError.
	ErrUnknown = "UNKNOWN"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (пароли, токены, ключи).
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrDispatchStart,
//	    "не удалось запустить диспетчер", err)
type AppError struct {
	// Code: машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message: человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause: wrapped оригинальная ошибка. Не сериализуется.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf возвращает код первого AppError в цепочке err.
// Для nil возвращает "", для ошибок без AppError, ErrUnknown.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrUnknown
}

// IsCategory проверяет, что код ошибки относится к категории (например, "CONFIG").
func IsCategory(err error, category string) bool {
	code := CodeOf(err)
	return len(code) > len(category) && code[:len(category)] == category && code[len(category)] == '.'
}
