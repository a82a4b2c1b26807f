package metrics

import (
	"net/url"
	"time"
)

// Config содержит настройки сбора и экспорта метрик исполнения.
type Config struct {
	// Enabled: включён ли сбор метрик (по умолчанию false).
	// При false используется InactiveCollector.
	Enabled bool

	// Namespace: префикс имён Prometheus метрик.
	// По умолчанию: "taskdispatch"
	Namespace string

	// PushgatewayURL: URL Prometheus Pushgateway.
	// Пусто: push отключён, метрики доступны только через HTTP.
	// Пример: "http://pushgateway:9091"
	PushgatewayURL string

	// JobName: имя job для группировки метрик в Pushgateway.
	// По умолчанию: "taskdispatch"
	JobName string

	// Timeout: таймаут HTTP запросов к Pushgateway.
	// По умолчанию: 10 секунд.
	Timeout time.Duration

	// InstanceLabel: переопределение instance label.
	// Если пусто: используется hostname.
	InstanceLabel string
}

// Validate проверяет корректность конфигурации.
// Возвращает ошибку если конфигурация невалидна.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // отключённые метрики валидны
	}

	if c.Namespace == "" {
		return ErrNamespaceRequired
	}

	if c.PushgatewayURL == "" {
		return nil
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		Namespace:      "taskdispatch",
		PushgatewayURL: "",
		JobName:        "taskdispatch",
		Timeout:        10 * time.Second,
		InstanceLabel:  "",
	}
}
