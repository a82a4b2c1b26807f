package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kargones/taskdispatch/internal/config"
	"github.com/Kargones/taskdispatch/internal/dispatch"
	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/progress"
)

// errSyntheticFailure: ошибка, которую возвращают задачи нагрузки по failRate.
var errSyntheticFailure = errors.New("synthetic task failure")

// submitBackoff: пауза перед повторной постановкой при заполненной очереди.
const submitBackoff = time.Millisecond

// workloadResult: итог прогона нагрузки.
type workloadResult struct {
	Submitted int
	Failed    int
}

// shouldFail распределяет ровно floor(n*rate) отказов равномерно по индексам.
func shouldFail(i int, rate float64) bool {
	return int(float64(i+1)*rate) > int(float64(i)*rate)
}

// syntheticUnit возвращает задачу, которая спит d и, если fail, возвращает ошибку.
func syntheticUnit(d time.Duration, fail bool) func() error {
	return func() error {
		if d > 0 {
			time.Sleep(d)
		}
		if fail {
			return errSyntheticFailure
		}
		return nil
	}
}

// runWorkload ставит wc.Tasks задач в диспетчер и ждёт их завершения.
// Заполненная очередь не считается ошибкой: постановка повторяется.
// Ошибкой прогона считается только отмена ctx.
// prog получает количество дождавшихся задач.
func runWorkload(ctx context.Context, d *dispatch.Dispatcher, wc *config.WorkloadConfig, logger logging.Logger, prog progress.Progress) (workloadResult, error) {
	var result workloadResult
	tasks := make([]*dispatch.Task, 0, wc.Tasks)

	for i := range wc.Tasks {
		unit := syntheticUnit(wc.Duration, shouldFail(i, wc.FailRate))
		for {
			task, err := d.Submit(ctx, unit)
			if err == nil {
				tasks = append(tasks, task)
				break
			}
			if !errors.Is(err, dispatch.ErrQueueFull) {
				return result, fmt.Errorf("постановка задачи %d: %w", i, err)
			}
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("постановка задачи %d: %w", i, ctx.Err())
			case <-time.After(submitBackoff):
			}
		}
		result.Submitted++
	}

	logger.Info("нагрузка поставлена в очередь", "tasks", result.Submitted)

	prog.Start(int64(len(tasks)))
	defer prog.Finish()

	for i, task := range tasks {
		err := task.Wait(ctx)
		prog.Update(int64(i + 1))
		switch {
		case err == nil:
		case errors.Is(err, errSyntheticFailure):
			result.Failed++
		case ctx.Err() != nil:
			return result, fmt.Errorf("ожидание задач: %w", ctx.Err())
		default:
			result.Failed++
			logger.Warn("задача завершилась с ошибкой", "task_id", task.ID.String(), "error", err.Error())
		}
	}
	return result, nil
}
