package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Значения по умолчанию для ServerConfig.
const (
	DefaultStreamInterval  = time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// ServerConfig содержит настройки HTTP сервера мониторинга.
type ServerConfig struct {
	// Addr: адрес прослушивания, например ":9464".
	Addr string

	// StreamInterval: период отправки срезов в /ws.
	StreamInterval time.Duration

	// ShutdownTimeout: таймаут graceful shutdown.
	ShutdownTimeout time.Duration
}

// Health: тело ответа /healthz и сообщение потока /ws.
type Health struct {
	Status         string            `json:"status"`
	MetricsEnabled bool              `json:"metrics_enabled"`
	Snapshot       *metrics.Snapshot `json:"snapshot,omitempty"`
}

// Server: HTTP сервер мониторинга.
type Server struct {
	collector metrics.Collector
	gatherer  prometheus.Gatherer
	logger    logging.Logger
	config    ServerConfig
	upgrader  websocket.Upgrader
}

// NewServer создаёт Server. gatherer обслуживает /metrics; при nil endpoint
// отвечает пустым набором метрик.
func NewServer(collector metrics.Collector, gatherer prometheus.Gatherer, logger logging.Logger, config ServerConfig) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if gatherer == nil {
		gatherer = prometheus.NewRegistry()
	}
	if config.StreamInterval <= 0 {
		config.StreamInterval = DefaultStreamInterval
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Server{
		collector: collector,
		gatherer:  gatherer,
		logger:    logger.With("component", "monitor"),
		config:    config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler возвращает http.Handler со всеми endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /ws", s.handleStream)
	return mux
}

// Run слушает config.Addr до отмены ctx, затем выполняет graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("monitor: не удалось открыть %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP мониторинг запущен", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("monitor: сервер остановился: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("monitor: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor: сервер остановился: %w", err)
	}
	s.logger.Info("HTTP мониторинг остановлен")
	return nil
}

func (s *Server) health() Health {
	snapshot, ok := s.collector.Metrics()
	h := Health{Status: "ok", MetricsEnabled: ok}
	if ok {
		h.Snapshot = &snapshot
	}
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.health()); err != nil {
		s.logger.Warn("не удалось записать ответ /healthz", "error", err.Error())
	}
}

// handleStream отправляет Health в websocket каждые StreamInterval до закрытия
// соединения клиентом или остановки сервера.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("не удалось открыть websocket", "error", err.Error())
		return
	}
	defer conn.Close() //nolint:errcheck // закрытие после ошибки записи

	// Входящие сообщения не ожидаются; чтение нужно только для обработки close frame
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.config.StreamInterval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(s.health()); err != nil {
			s.logger.Debug("websocket поток завершён", "error", err.Error())
			return
		}
		select {
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage, //nolint:errcheck // best effort
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
			return
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
