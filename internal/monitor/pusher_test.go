package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatewayStub struct {
	mu     sync.Mutex
	paths  []string
	status int
}

func (g *gatewayStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.paths = append(g.paths, r.Method+" "+r.URL.Path)
	g.mu.Unlock()
	w.WriteHeader(g.status)
}

func (g *gatewayStub) requests() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.paths...)
}

func pushConfig(url string) metrics.Config {
	cfg := metrics.DefaultConfig()
	cfg.Enabled = true
	cfg.PushgatewayURL = url
	cfg.JobName = "td"
	cfg.InstanceLabel = "host-1"
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestPusher_Push(t *testing.T) {
	gw := &gatewayStub{status: http.StatusOK}
	ts := httptest.NewServer(gw)
	defer ts.Close()

	collector := metrics.NewActiveCollector(logging.NewNopLogger())
	runTracked(t, collector, 1, nil)
	registry, err := metrics.NewRegistry(collector, "td")
	require.NoError(t, err)

	logger := &testLogger{}
	NewPusher(pushConfig(ts.URL), registry, logger).Push(context.Background())

	assert.Equal(t, []string{"PUT /metrics/job/td/instance/host-1"}, gw.requests())
	assert.Len(t, logger.byLevel("info"), 1)
	assert.Empty(t, logger.byLevel("error"))
}

func TestPusher_GatewayErrorIsLogged(t *testing.T) {
	gw := &gatewayStub{status: http.StatusInternalServerError}
	ts := httptest.NewServer(gw)
	defer ts.Close()

	registry, err := metrics.NewRegistry(metrics.Inactive(), "td")
	require.NoError(t, err)

	logger := &testLogger{}
	NewPusher(pushConfig(ts.URL), registry, logger).Push(context.Background())

	errs := logger.byLevel("error")
	require.Len(t, errs, 1)
	assert.Equal(t, ts.URL, errs[0].attrs["url"], "URL без path выводится целиком")
}

func TestPusher_Disabled(t *testing.T) {
	gw := &gatewayStub{status: http.StatusOK}
	ts := httptest.NewServer(gw)
	defer ts.Close()

	cfg := pushConfig("")
	p := NewPusher(cfg, nil, &testLogger{})
	assert.False(t, p.Enabled())
	p.Push(context.Background())

	assert.Empty(t, gw.requests())
}

func TestPusher_CancelledContext(t *testing.T) {
	gw := &gatewayStub{status: http.StatusOK}
	ts := httptest.NewServer(gw)
	defer ts.Close()

	registry, err := metrics.NewRegistry(metrics.Inactive(), "td")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewPusher(pushConfig(ts.URL), registry, &testLogger{}).Push(ctx)

	assert.Empty(t, gw.requests())
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "host_1", sanitizeLabel("host\n1"))
	assert.Equal(t, "узел", sanitizeLabel("узел"))

	long := strings.Repeat("я", maxLabelLength+10)
	assert.Equal(t, maxLabelLength, len([]rune(sanitizeLabel(long))))
}
