package dispatch

import (
	"context"

	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"github.com/google/uuid"
)

// Task: задача, принятая диспетчером.
type Task struct {
	// ID: уникальный идентификатор задачи.
	ID uuid.UUID

	ctx  context.Context
	unit metrics.Unit
	done chan struct{}
	err  error
}

func newTask(ctx context.Context, unit metrics.Unit) *Task {
	return &Task{
		ID:   uuid.New(),
		ctx:  ctx,
		unit: unit,
		done: make(chan struct{}),
	}
}

// Done закрывается, когда задача исполнена или отброшена.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err возвращает результат задачи. Валиден после закрытия Done.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait ожидает завершения задачи и возвращает её ошибку.
// При отмене ctx возвращает ctx.Err(); сама задача при этом не отменяется.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}
