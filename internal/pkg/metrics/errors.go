package metrics

import "errors"

var (
	// ErrNamespaceRequired возвращается если не указан namespace при включённых метриках.
	ErrNamespaceRequired = errors.New("metrics namespace is required when metrics enabled")

	// ErrJobNameRequired возвращается если не указано имя job при заданном Pushgateway.
	ErrJobNameRequired = errors.New("job name is required")

	// ErrInvalidTimeout возвращается если указан невалидный таймаут.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrPushgatewayURLInvalid возвращается если URL Pushgateway имеет невалидный формат.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")

	// ErrNilCollector возвращается при попытке установить nil сборщик.
	ErrNilCollector = errors.New("collector must not be nil")

	// ErrAlreadyInstalled возвращается при повторной установке сборщика процесса.
	ErrAlreadyInstalled = errors.New("process collector already installed")
)
