package dispatch

import "errors"

var (
	// ErrNotRunning возвращается при Submit в незапущенный или остановленный диспетчер.
	ErrNotRunning = errors.New("dispatcher is not running")

	// ErrQueueFull возвращается если очередь заполнена. Submit не блокируется.
	ErrQueueFull = errors.New("dispatch queue is full")

	// ErrNilUnit возвращается при Submit с nil задачей.
	ErrNilUnit = errors.New("unit must not be nil")

	// ErrTaskPanicked оборачивает панику задачи, перехваченную воркером.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrStopped: результат задач, оставшихся в очереди после истечения
	// дедлайна Stop.
	ErrStopped = errors.New("dispatcher stopped before task started")
)
