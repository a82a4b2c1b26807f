package monitor

import (
	"context"
	"os"
	"strings"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// maxLabelLength: максимальная длина значения label.
const maxLabelLength = 128

// Pusher отправляет содержимое registry в Prometheus Pushgateway.
type Pusher struct {
	config   metrics.Config
	gatherer prometheus.Gatherer
	logger   logging.Logger
	instance string
}

// NewPusher создаёт Pusher. Instance label берётся из config.InstanceLabel,
// при пустом значении: hostname.
func NewPusher(config metrics.Config, gatherer prometheus.Gatherer, logger logging.Logger) *Pusher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	return &Pusher{
		config:   config,
		gatherer: gatherer,
		logger:   logger,
		instance: sanitizeLabel(instance),
	}
}

// Enabled сообщает, настроен ли Pushgateway.
func (p *Pusher) Enabled() bool {
	return p.config.Enabled && p.config.PushgatewayURL != "" && p.gatherer != nil
}

// Push отправляет метрики в Pushgateway.
// Ошибки логируются и не возвращаются: отказ мониторинга не влияет на результат запуска.
func (p *Pusher) Push(ctx context.Context) {
	if !p.Enabled() {
		p.logger.Debug("metrics: pushgateway не настроен, push пропущен")
		return
	}

	select {
	case <-ctx.Done():
		p.logger.Debug("metrics push отменён")
		return
	default:
	}

	pushCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	pusher := push.New(p.config.PushgatewayURL, p.config.JobName).
		Gatherer(p.gatherer).
		Grouping("instance", p.instance)

	if err := pusher.PushContext(pushCtx); err != nil {
		p.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(p.config.PushgatewayURL),
			"job", p.config.JobName,
		)
		return
	}

	p.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(p.config.PushgatewayURL),
		"job", p.config.JobName,
		"instance", p.instance,
	)
}

// sanitizeLabel заменяет управляющие символы и обрезает значение по рунам.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}
