package dispatch

import "go.opentelemetry.io/otel/trace"

// Значения по умолчанию.
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 1024
)

// Option настраивает Dispatcher.
type Option func(*Dispatcher)

// WithWorkers задаёт количество воркеров. Значения < 1 игнорируются.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithQueueSize задаёт ёмкость очереди. Значения < 1 игнорируются.
func WithQueueSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

// WithTracer задаёт tracer для span-ов задач.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}
