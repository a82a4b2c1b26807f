// Package progress отображает ход прогона задач в stderr: progress bar для
// терминала, периодические записи в лог для CI и пустая реализация.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
)

// Progress отображает количество завершённых задач из известного общего числа.
type Progress interface {
	// Start начинает отображение. total: общее количество задач.
	Start(total int64)
	// Update сообщает текущее количество завершённых задач.
	Update(done int64)
	// Finish завершает отображение.
	Finish()
}

// Options конфигурирует Progress.
type Options struct {
	// Output: куда рисовать bar (обычно os.Stderr).
	Output io.Writer
	// Logger: куда писать прогресс в non-TTY режиме.
	Logger logging.Logger
	// ThrottleInterval: минимальный интервал между перерисовками bar.
	ThrottleInterval time.Duration
}

// IsTTY проверяет, является ли writer терминалом.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// FormatDuration форматирует duration: "45s", "5m 30s", "1h 7m 30s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		return "0s"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func percentOf(done, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(min(done*100/total, 100))
}
