package metrics

import (
	"github.com/Kargones/taskdispatch/internal/pkg/logging"
)

// NewCollector создаёт Collector на основе конфигурации.
// Если метрики отключены (Config.Enabled = false), возвращает InactiveCollector.
// Если включены: возвращает ActiveCollector.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return Inactive(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewActiveCollector(logger), nil
}
