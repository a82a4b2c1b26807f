package tracing

import "context"

// NewNopTracerProvider возвращает nop shutdown function.
// Используется когда трейсинг выключен: глобальный provider остаётся noop,
// span-ы диспетчера ничего не стоят.
func NewNopTracerProvider() func(context.Context) error {
	return func(_ context.Context) error { return nil }
}
