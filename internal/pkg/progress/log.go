package progress

import (
	"sync"
	"time"
)

// LogProgress пишет прогресс в лог при пересечении каждых 10%.
// Используется, когда stderr не терминал (CI, pipes).
type LogProgress struct {
	mu           sync.Mutex
	opts         Options
	startTime    time.Time
	total        int64
	lastReported int
}

// NewLogProgress создаёт LogProgress.
func NewLogProgress(opts Options) *LogProgress {
	return &LogProgress{opts: opts}
}

// Start записывает начало прогона.
func (p *LogProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.total = total
	p.lastReported = 0
	p.opts.Logger.Info("прогон задач начат", "total", total)
}

// Update пишет запись, когда процент пересекает очередную десятку.
func (p *LogProgress) Update(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	threshold := percentOf(done, p.total) / 10 * 10
	if threshold <= p.lastReported || threshold >= 100 {
		return
	}
	p.lastReported = threshold
	p.opts.Logger.Info("прогресс прогона",
		"percent", threshold,
		"done", done,
		"elapsed", FormatDuration(time.Since(p.startTime)),
	)
}

// Finish записывает длительность прогона.
func (p *LogProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opts.Logger.Info("прогон задач завершён", "duration", FormatDuration(time.Since(p.startTime)))
}
