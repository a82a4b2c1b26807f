package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Dispatcher исполняет задачи пулом воркеров через ограниченную очередь.
type Dispatcher struct {
	collector metrics.Collector
	logger    logging.Logger
	tracer    trace.Tracer
	workers   int
	queueSize int

	mu      sync.RWMutex
	running bool
	queue   chan *Task
	group   *errgroup.Group

	// slots ограничивает число задач в очереди. Слот занимается до Track,
	// поэтому отклонённая задача не попадает в метрики.
	slots chan struct{}

	// aborted выставляется при истечении дедлайна Stop: воркеры отбрасывают
	// оставшиеся в очереди задачи, не исполняя их.
	aborted atomic.Bool
}

// New создаёт Dispatcher. Collector выбирается вызывающей стороной один раз
// при конфигурации; nil означает сборщик процесса (metrics.Default).
func New(collector metrics.Collector, logger logging.Logger, opts ...Option) *Dispatcher {
	if collector == nil {
		collector = metrics.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	d := &Dispatcher{
		collector: collector,
		logger:    logger,
		tracer:    tracing.Tracer(),
		workers:   DefaultWorkers,
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Collector возвращает сборщик, которым диспетчер оборачивает задачи.
func (d *Dispatcher) Collector() metrics.Collector {
	return d.collector
}

// Metrics возвращает срез метрик сборщика диспетчера.
func (d *Dispatcher) Metrics() (metrics.Snapshot, bool) {
	return d.collector.Metrics()
}

// Start запускает воркеры и возвращается сразу.
// Повторный вызов на запущенном диспетчере ничего не делает.
func (d *Dispatcher) Start(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	d.queue = make(chan *Task, d.queueSize)
	d.slots = make(chan struct{}, d.queueSize)
	d.group = &errgroup.Group{}
	d.aborted.Store(false)
	d.running = true

	d.logger.Info("диспетчер запускается",
		"workers", d.workers,
		"queue_size", d.queueSize,
	)

	queue, slots := d.queue, d.slots
	for i := range d.workers {
		d.group.Go(func() error {
			d.work(i, queue, slots)
			return nil
		})
	}

	return nil
}

// Submit оборачивает unit через Collector.Track и ставит в очередь.
// Не блокируется: при заполненной очереди возвращает ErrQueueFull.
// Контекст ctx принадлежит задаче: если он отменён до старта, задача
// не исполняется и завершается с ctx.Err().
func (d *Dispatcher) Submit(ctx context.Context, unit metrics.Unit) (*Task, error) {
	if unit == nil {
		return nil, ErrNilUnit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		return nil, ErrNotRunning
	}

	select {
	case d.slots <- struct{}{}:
	default:
		d.logger.Warn("очередь диспетчера заполнена, задача отклонена",
			"queue_size", d.queueSize,
		)
		return nil, ErrQueueFull
	}

	// Слот занят: отправка в очередь той же ёмкости не блокируется
	task := newTask(ctx, d.collector.Track(unit))
	d.queue <- task
	return task, nil
}

// Stop прекращает приём задач, дожидается исполнения очереди и завершения воркеров.
// Если ctx истекает раньше, задачи, ещё не начатые, завершаются с ErrStopped,
// а Stop возвращает ctx.Err() после остановки воркеров.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.queue)
	group := d.group
	d.mu.Unlock()

	d.logger.Info("диспетчер останавливается")

	done := make(chan struct{})
	go func() {
		_ = group.Wait() //nolint:errcheck // воркеры не возвращают ошибок
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("диспетчер остановлен")
		return nil
	case <-ctx.Done():
		d.logger.Warn("дедлайн остановки истёк, оставшиеся задачи отбрасываются")
		d.aborted.Store(true)
		<-done
		return ctx.Err()
	}
}

// work: цикл воркера: исполняет задачи до закрытия очереди.
func (d *Dispatcher) work(id int, queue <-chan *Task, slots <-chan struct{}) {
	logger := d.logger.With("worker", id)
	logger.Debug("воркер запущен")
	for task := range queue {
		<-slots
		d.execute(id, logger, task)
	}
	logger.Debug("воркер остановлен")
}

func (d *Dispatcher) execute(worker int, logger logging.Logger, task *Task) {
	if d.aborted.Load() {
		task.finish(ErrStopped)
		return
	}
	if err := task.ctx.Err(); err != nil {
		logger.Debug("задача отменена до старта",
			"task_id", task.ID.String(),
			"error", err.Error(),
		)
		task.finish(err)
		return
	}

	_, span := d.tracer.Start(task.ctx, "dispatch.task",
		trace.WithAttributes(
			attribute.String("task.id", task.ID.String()),
			attribute.Int("worker.id", worker),
		),
	)

	err := run(task.unit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("задача завершилась с ошибкой",
			"task_id", task.ID.String(),
			"error", err.Error(),
		)
	}
	span.End()

	task.finish(err)
}

// run исполняет unit, превращая панику в ErrTaskPanicked. Сборщик к этому
// моменту уже учёл панику как отказ.
func run(unit metrics.Unit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return unit()
}
