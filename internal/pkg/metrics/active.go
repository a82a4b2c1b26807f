package metrics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
)

// ActiveCollector: активная реализация Collector.
// Все агрегаты: атомарные счётчики: воркеры обновляют их без общего мьютекса,
// а Metrics читает их, не дожидаясь исполняющихся задач.
type ActiveCollector struct {
	logger logging.Logger
	since  time.Time
	now    func() time.Time

	// wrap строит обёртку вокруг unit. По умолчанию newTracker.
	wrap func(unit Unit) Unit

	tracked   atomic.Int64
	started   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	untracked atomic.Int64

	totalRunNs  atomic.Int64
	maxRunNs    atomic.Int64
	totalWaitNs atomic.Int64
	maxWaitNs   atomic.Int64
}

// NewActiveCollector создаёт ActiveCollector.
// При nil logger используется NopLogger.
func NewActiveCollector(logger logging.Logger) *ActiveCollector {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &ActiveCollector{
		logger: logger,
		now:    time.Now,
	}
	c.since = c.now()
	c.wrap = c.newTracker
	return c
}

// Track оборачивает unit для учёта в статистике.
// Если построить обёртку не удалось, возвращает исходный unit (fail-open):
// инструментирование не должно мешать исполнению задачи.
func (c *ActiveCollector) Track(unit Unit) (tracked Unit) {
	if unit == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			c.untracked.Add(1)
			c.logger.Warn("metrics: не удалось обернуть задачу, выполняется без учёта",
				"panic", fmt.Sprint(r),
			)
			tracked = unit
		}
	}()

	wrapped := c.wrap(unit)
	if wrapped == nil {
		c.untracked.Add(1)
		return unit
	}
	c.tracked.Add(1)
	return wrapped
}

// newTracker строит обёртку, фиксирующую момент постановки в очередь.
// Обёртка учитывается не более одного раза: повторный вызов исполняет
// исходный unit, но в статистику не попадает.
func (c *ActiveCollector) newTracker(unit Unit) Unit {
	enqueued := c.now()
	var ran atomic.Bool

	return func() (err error) {
		if !ran.CompareAndSwap(false, true) {
			return unit()
		}

		start := c.now()
		c.started.Add(1)
		c.observe(&c.totalWaitNs, &c.maxWaitNs, start.Sub(enqueued))

		// Паника в unit не перехватывается: success остаётся false,
		// задача учитывается как отказ, паника идёт дальше без изменений.
		success := false
		defer func() {
			c.observe(&c.totalRunNs, &c.maxRunNs, c.now().Sub(start))
			if success {
				c.completed.Add(1)
			} else {
				c.failed.Add(1)
			}
		}()

		err = unit()
		success = err == nil
		return err
	}
}

// observe добавляет d к сумме и обновляет максимум.
func (c *ActiveCollector) observe(total, maxNs *atomic.Int64, d time.Duration) {
	ns := int64(d)
	if ns < 0 {
		ns = 0
	}
	total.Add(ns)
	for {
		cur := maxNs.Load()
		if ns <= cur || maxNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// Metrics возвращает срез текущих агрегатов.
// Счётчики читаются в порядке, обратном порядку обновления (терминальные,
// затем started, затем tracked), поэтому в срезе всегда
// Tracked >= Started >= Completed+Failed.
func (c *ActiveCollector) Metrics() (Snapshot, bool) {
	s := Snapshot{
		Version: SnapshotVersion,
		Since:   c.since,
	}
	s.Completed = c.completed.Load()
	s.Failed = c.failed.Load()
	s.TotalRunTime = time.Duration(c.totalRunNs.Load())
	s.MaxRunTime = time.Duration(c.maxRunNs.Load())
	s.Started = c.started.Load()
	s.TotalWaitTime = time.Duration(c.totalWaitNs.Load())
	s.MaxWaitTime = time.Duration(c.maxWaitNs.Load())
	s.Tracked = c.tracked.Load()
	s.Untracked = c.untracked.Load()
	return s, true
}
