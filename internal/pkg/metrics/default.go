package metrics

import "sync/atomic"

// holder нужен потому, что atomic.Pointer не хранит интерфейсы напрямую.
type holder struct {
	collector Collector
}

var installed atomic.Pointer[holder]

// Install устанавливает сборщик уровня процесса.
// Вызывается один раз при старте; повторный вызов возвращает ErrAlreadyInstalled.
func Install(c Collector) error {
	if c == nil {
		return ErrNilCollector
	}
	if !installed.CompareAndSwap(nil, &holder{collector: c}) {
		return ErrAlreadyInstalled
	}
	return nil
}

// Default возвращает сборщик уровня процесса.
// Если Install не вызывался: InactiveCollector.
func Default() Collector {
	if h := installed.Load(); h != nil {
		return h.collector
	}
	return Inactive()
}
