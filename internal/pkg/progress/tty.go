package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// barWidth: ширина progress bar в символах.
const barWidth = 30

// TTYProgress рисует progress bar в терминале.
type TTYProgress struct {
	mu        sync.Mutex
	opts      Options
	now       func() time.Time
	startTime time.Time
	lastDraw  time.Time
	total     int64
	done      int64
}

// NewTTYProgress создаёт TTYProgress.
func NewTTYProgress(opts Options) *TTYProgress {
	return &TTYProgress{opts: opts, now: time.Now}
}

// Start сбрасывает состояние и рисует пустой bar.
func (p *TTYProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = p.now()
	p.total = total
	p.done = 0
	p.draw()
}

// Update перерисовывает bar не чаще ThrottleInterval.
func (p *TTYProgress) Update(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = done
	if p.opts.ThrottleInterval > 0 && p.now().Sub(p.lastDraw) < p.opts.ThrottleInterval {
		return
	}
	p.draw()
}

// Finish рисует финальное состояние и переводит строку.
func (p *TTYProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draw()
	_, _ = fmt.Fprintln(p.opts.Output) //nolint:errcheck // terminal output
}

// draw выводит строку вида: [=====>     ] 45% 450/1000 | ETA: 2m 30s
func (p *TTYProgress) draw() {
	p.lastDraw = p.now()
	percent := percentOf(p.done, p.total)

	line := fmt.Sprintf("\r%s %d%% %d/%d", renderBar(percent), percent, p.done, p.total)
	if eta, ok := p.eta(); ok {
		line += " | ETA: " + eta
	}
	line += "\033[K"

	_, _ = fmt.Fprint(p.opts.Output, line) //nolint:errcheck // terminal output
}

func (p *TTYProgress) eta() (string, bool) {
	if p.done <= 0 || p.done >= p.total {
		return "", false
	}
	elapsed := p.now().Sub(p.startTime)
	remaining := time.Duration(float64(elapsed) / float64(p.done) * float64(p.total-p.done))
	if remaining < time.Second {
		return "<1s", true
	}
	return FormatDuration(remaining), true
}

func renderBar(percent int) string {
	filled := min(percent*barWidth/100, barWidth)

	var bar strings.Builder
	bar.WriteString("[")
	for i := range barWidth {
		switch {
		case i < filled:
			bar.WriteString("=")
		case i == filled && filled > 0:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")
	return bar.String()
}
