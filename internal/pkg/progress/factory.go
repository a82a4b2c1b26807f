package progress

import (
	"os"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
)

// DefaultThrottleInterval: интервал перерисовки bar по умолчанию.
const DefaultThrottleInterval = 100 * time.Millisecond

// ShowProgressEnv: переменная окружения; "false" отключает прогресс.
const ShowProgressEnv = "TD_SHOW_PROGRESS"

// New выбирает реализацию:
//  1. TD_SHOW_PROGRESS=false → NoopProgress
//  2. Output: терминал → TTYProgress
//  3. иначе → LogProgress
func New(opts Options) Progress {
	if opts.ThrottleInterval == 0 {
		opts.ThrottleInterval = DefaultThrottleInterval
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	if os.Getenv(ShowProgressEnv) == "false" {
		return NewNoOp()
	}
	if IsTTY(opts.Output) {
		return NewTTYProgress(opts)
	}
	return NewLogProgress(opts)
}
