package metrics

// InactiveCollector: no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
// Не имеет состояния, поэтому существует в единственном экземпляре.
type InactiveCollector struct{}

var inactive = &InactiveCollector{}

// Inactive возвращает разделяемый экземпляр InactiveCollector.
func Inactive() *InactiveCollector {
	return inactive
}

// Track возвращает тот же unit без обёртки и аллокаций.
func (c *InactiveCollector) Track(unit Unit) Unit {
	return unit
}

// Metrics всегда сообщает, что данных нет.
func (c *InactiveCollector) Metrics() (Snapshot, bool) {
	return Snapshot{}, false
}
