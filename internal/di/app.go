// Package di собирает зависимости taskdispatch через Google Wire.
package di

import (
	"context"

	"github.com/Kargones/taskdispatch/internal/config"
	"github.com/Kargones/taskdispatch/internal/dispatch"
	"github.com/Kargones/taskdispatch/internal/monitor"
	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/output"
	"github.com/Kargones/taskdispatch/internal/pkg/progress"

	"github.com/prometheus/client_golang/prometheus"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config: конфигурация приложения, передаётся в InitializeApp.
	Config *config.Config

	// Logger: структурированный логгер по LoggingConfig.
	Logger logging.Logger

	// OutputWriter форматирует отчёт по TD_OUTPUT_FORMAT.
	OutputWriter output.Writer

	// TraceID: идентификатор запуска для корреляции логов и трейсов.
	TraceID string

	// Collector: активный или неактивный сборщик по metrics.enabled.
	Collector metrics.Collector

	// Registry содержит PrometheusExporter над Collector.
	Registry *prometheus.Registry

	// TracerShutdown завершает TracerProvider и сбрасывает трейсы.
	TracerShutdown func(context.Context) error

	// Dispatcher исполняет задачи через Collector.
	Dispatcher *dispatch.Dispatcher

	// Poller периодически логирует срезы метрик.
	Poller *monitor.Poller

	// Monitor: HTTP сервер мониторинга, nil при monitor.enabled=false.
	Monitor *monitor.Server

	// Pusher отправляет Registry в Pushgateway.
	Pusher *monitor.Pusher

	// Progress отображает ход ожидания задач нагрузки.
	Progress progress.Progress
}
