package monitor

import (
	"sync"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
)

type logEntry struct {
	level string
	msg   string
	attrs map[string]any
}

// testLogger реализует logging.Logger для тестирования. Thread-safe.
type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) record(level, msg string, args []any) {
	attrs := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs[key] = args[i+1]
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, attrs: attrs})
}

func (l *testLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *testLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *testLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *testLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *testLogger) With(_ ...any) logging.Logger  { return l }

func (l *testLogger) byLevel(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}
