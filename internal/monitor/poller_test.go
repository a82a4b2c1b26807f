package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTracked(t *testing.T, c metrics.Collector, n int, err error) {
	t.Helper()
	for range n {
		_ = c.Track(func() error { return err })() //nolint:errcheck // результат проверяется через метрики
	}
}

func TestPoller_InactiveLogsOnce(t *testing.T) {
	logger := &testLogger{}
	p := NewPoller(metrics.Inactive(), logger, time.Second)

	p.Poll()
	p.Poll()
	p.Poll()

	infos := logger.byLevel("info")
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].msg, "metrics disabled")
}

func TestPoller_WindowThroughput(t *testing.T) {
	logger := &testLogger{}
	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	p := NewPoller(collector, logger, time.Second)

	base := time.Now()
	p.now = func() time.Time { return base }
	runTracked(t, collector, 3, nil)
	p.Poll()

	runTracked(t, collector, 4, errors.New("boom"))
	p.now = func() time.Time { return base.Add(2 * time.Second) }
	p.Poll()

	infos := logger.byLevel("info")
	require.Len(t, infos, 2)

	last := infos[1]
	assert.Equal(t, "metrics snapshot", last.msg)
	assert.Equal(t, int64(7), last.attrs["tracked"])
	assert.Equal(t, int64(3), last.attrs["completed"])
	assert.Equal(t, int64(4), last.attrs["failed"])
	assert.InDelta(t, 2.0, last.attrs["throughput_per_sec"], 1e-9, "4 задачи за окно 2с")
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	p := NewPoller(metrics.Inactive(), &testLogger{}, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}
}

func TestPoller_ZeroIntervalReturns(t *testing.T) {
	p := NewPoller(metrics.Inactive(), nil, 0)
	p.Run(context.Background())
}
