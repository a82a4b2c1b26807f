package monitor

import (
	"context"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
)

// Poller периодически читает срез метрик и пишет его в лог вместе
// с пропускной способностью за прошедший интервал.
type Poller struct {
	collector metrics.Collector
	logger    logging.Logger
	interval  time.Duration
	now       func() time.Time

	prev         metrics.Snapshot
	prevAt       time.Time
	havePrev     bool
	loggedAbsent bool
}

// NewPoller создаёт Poller. interval <= 0 делает Run немедленно завершающимся.
func NewPoller(collector metrics.Collector, logger logging.Logger, interval time.Duration) *Poller {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Poller{
		collector: collector,
		logger:    logger.With("component", "poller"),
		interval:  interval,
		now:       time.Now,
	}
}

// Run опрашивает сборщик до отмены ctx. Ошибок не возвращает: опрос не может сломаться.
func (p *Poller) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll выполняет один опрос. Вызов не потокобезопасен: Poller принадлежит одной горутине.
func (p *Poller) Poll() {
	snapshot, ok := p.collector.Metrics()
	if !ok {
		if !p.loggedAbsent {
			p.logger.Info("metrics disabled: сборщик не собирает данные")
			p.loggedAbsent = true
		}
		return
	}

	now := p.now()
	var throughput float64
	if p.havePrev {
		throughput = snapshot.Sub(p.prev).Throughput(now.Sub(p.prevAt))
	} else {
		throughput = snapshot.Throughput(now.Sub(snapshot.Since))
	}
	p.prev, p.prevAt, p.havePrev = snapshot, now, true

	p.logger.Info("metrics snapshot",
		"tracked", snapshot.Tracked,
		"completed", snapshot.Completed,
		"failed", snapshot.Failed,
		"pending", snapshot.Pending(),
		"running", snapshot.Running(),
		"untracked", snapshot.Untracked,
		"avg_run_ms", snapshot.AvgRunTime().Milliseconds(),
		"max_run_ms", snapshot.MaxRunTime.Milliseconds(),
		"avg_wait_ms", snapshot.AvgWaitTime().Milliseconds(),
		"throughput_per_sec", throughput,
	)
}
