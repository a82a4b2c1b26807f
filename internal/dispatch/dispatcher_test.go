package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// startDispatcher создаёт и запускает диспетчер, останавливая его по завершении теста.
func startDispatcher(t *testing.T, collector metrics.Collector, opts ...Option) *Dispatcher {
	t.Helper()
	d := New(collector, logging.NewNopLogger(), opts...)
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = d.Stop(ctx)
	})
	return d
}

// gate блокирует воркер до вызова release.
func gate() (unit metrics.Unit, started <-chan struct{}, release func()) {
	startedCh := make(chan struct{})
	releaseCh := make(chan struct{})
	var once sync.Once
	unit = func() error {
		close(startedCh)
		<-releaseCh
		return nil
	}
	return unit, startedCh, func() { once.Do(func() { close(releaseCh) }) }
}

func TestDispatcher_SubmitAndWait(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := startDispatcher(t, collector, WithWorkers(2))
	errTask := errors.New("task failed")

	ok, err := d.Submit(context.Background(), func() error { return nil })
	require.NoError(t, err)
	failed, err := d.Submit(context.Background(), func() error { return errTask })
	require.NoError(t, err)

	assert.NoError(t, ok.Wait(context.Background()))
	assert.Same(t, errTask, failed.Wait(context.Background()), "ошибка задачи не должна меняться")
	assert.NotEqual(t, ok.ID, failed.ID)

	snapshot, present := d.Metrics()
	require.True(t, present)
	assert.Equal(t, int64(1), snapshot.Completed)
	assert.Equal(t, int64(1), snapshot.Failed)
	assert.Equal(t, int64(2), snapshot.Tracked)
}

func TestDispatcher_InactiveCollector(t *testing.T) {
	d := startDispatcher(t, nil)

	var ran bool
	task, err := d.Submit(context.Background(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, task.Wait(context.Background()))
	assert.True(t, ran)

	_, present := d.Metrics()
	assert.False(t, present, "по умолчанию метрики отключены")
	assert.Same(t, metrics.Inactive(), d.Collector())
}

func TestDispatcher_CancelledBeforeStartNotCounted(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := startDispatcher(t, collector, WithWorkers(1))

	blocker, started, release := gate()
	defer release()
	_, err := d.Submit(context.Background(), blocker)
	require.NoError(t, err)
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	var ran bool
	task, err := d.Submit(ctx, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	cancel()
	release()

	assert.ErrorIs(t, task.Wait(context.Background()), context.Canceled)
	assert.False(t, ran, "отменённая задача не исполняется")

	snapshot, _ := collector.Metrics()
	assert.Equal(t, int64(1), snapshot.Completed, "учтена только блокирующая задача")
	assert.Zero(t, snapshot.Failed)
	assert.Equal(t, int64(2), snapshot.Tracked)
	assert.Equal(t, int64(1), snapshot.Pending())
}

func TestDispatcher_QueueFull(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := startDispatcher(t, collector, WithWorkers(1), WithQueueSize(1))

	blocker, started, release := gate()
	defer release()
	_, err := d.Submit(context.Background(), blocker)
	require.NoError(t, err)
	<-started

	_, err = d.Submit(context.Background(), func() error { return nil })
	require.NoError(t, err, "первая задача помещается в очередь")

	_, err = d.Submit(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)

	snapshot, _ := d.Metrics()
	assert.Equal(t, int64(2), snapshot.Tracked, "отклонённая задача не оборачивается")
	assert.Equal(t, int64(1), snapshot.Pending())
}

func TestDispatcher_SubmitErrors(t *testing.T) {
	d := New(nil, nil)

	_, err := d.Submit(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, d.Start(context.Background()))
	defer func() { _ = d.Stop(context.Background()) }()

	_, err = d.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilUnit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Submit(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatcher_PanicIsIsolated(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := startDispatcher(t, collector, WithWorkers(1))

	panicking, err := d.Submit(context.Background(), func() error { panic("boom") })
	require.NoError(t, err)
	assert.ErrorIs(t, panicking.Wait(context.Background()), ErrTaskPanicked)

	next, err := d.Submit(context.Background(), func() error { return nil })
	require.NoError(t, err)
	assert.NoError(t, next.Wait(context.Background()), "воркер продолжает работу после паники")

	snapshot, _ := collector.Metrics()
	assert.Equal(t, int64(1), snapshot.Failed)
	assert.Equal(t, int64(1), snapshot.Completed)
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := New(collector, logging.NewNopLogger(), WithWorkers(2))
	require.NoError(t, d.Start(context.Background()))

	const total = 100
	tasks := make([]*Task, 0, total)
	for i := 0; i < total; i++ {
		task, err := d.Submit(context.Background(), func() error { return nil })
		require.NoError(t, err)
		tasks = append(tasks, task)
	}

	require.NoError(t, d.Stop(context.Background()))

	for _, task := range tasks {
		select {
		case <-task.Done():
			assert.NoError(t, task.Err())
		default:
			t.Fatal("после Stop все задачи должны быть завершены")
		}
	}

	_, err := d.Submit(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrNotRunning)

	snapshot, _ := collector.Metrics()
	assert.Equal(t, int64(total), snapshot.Completed)
}

func TestDispatcher_StopDeadlineAbandonsQueued(t *testing.T) {
	d := New(nil, logging.NewNopLogger(), WithWorkers(1))
	require.NoError(t, d.Start(context.Background()))

	blocker, started, release := gate()
	_, err := d.Submit(context.Background(), blocker)
	require.NoError(t, err)
	<-started

	var ran bool
	queued, err := d.Submit(context.Background(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	go func() {
		// Освобождаем воркер только после того, как Stop пометил очередь брошенной.
		for !d.aborted.Load() {
			time.Sleep(time.Millisecond)
		}
		release()
	}()

	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
	assert.ErrorIs(t, queued.Err(), ErrStopped)
	assert.False(t, ran)
}

func TestDispatcher_ConcurrentSubmitters(t *testing.T) {
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	d := startDispatcher(t, collector, WithWorkers(16), WithQueueSize(5000))

	const submitters, perSubmitter = 20, 200
	errOdd := errors.New("odd")

	var wg sync.WaitGroup
	taskCh := make(chan *Task, submitters*perSubmitter)
	for s := 0; s < submitters; s++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSubmitter; i++ {
				fail := i%4 == 0
				task, err := d.Submit(context.Background(), func() error {
					if fail {
						return errOdd
					}
					return nil
				})
				if err == nil {
					taskCh <- task
				}
			}
		}()
	}
	wg.Wait()
	close(taskCh)

	var submitted int
	for task := range taskCh {
		_ = task.Wait(context.Background())
		submitted++
	}
	require.Equal(t, submitters*perSubmitter, submitted)

	snapshot, _ := collector.Metrics()
	assert.Equal(t, int64(submitted), snapshot.Finished())
	assert.Equal(t, int64(submitters*perSubmitter/4), snapshot.Failed)
}

func TestDispatcher_TaskSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	d := startDispatcher(t, nil, WithWorkers(1), WithTracer(provider.Tracer("test")))
	errTask := errors.New("span error")

	first, err := d.Submit(context.Background(), func() error { return nil })
	require.NoError(t, err)
	second, err := d.Submit(context.Background(), func() error { return errTask })
	require.NoError(t, err)
	require.NoError(t, first.Wait(context.Background()))
	require.Error(t, second.Wait(context.Background()))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "dispatch.task", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "span error", spans[1].Status().Description)
}

func TestDispatcher_StartIsIdempotent(t *testing.T) {
	d := startDispatcher(t, nil)

	assert.NoError(t, d.Start(context.Background()))
	assert.NoError(t, d.Stop(context.Background()))
	assert.NoError(t, d.Stop(context.Background()), "повторный Stop: no-op")
}

func TestTask_WaitContext(t *testing.T) {
	task := newTask(context.Background(), func() error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, task.Wait(ctx), context.DeadlineExceeded)
	assert.NoError(t, task.Err(), "до завершения Err возвращает nil")
}
