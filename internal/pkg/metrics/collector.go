// Package metrics предоставляет контракт сборщика метрик выполнения задач
// и две его реализации.
//
// Пакет следует паттернам проекта:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: InactiveCollector при отключённых метриках
//
// Диспетчер вызывает Track для каждой задачи непосредственно перед постановкой
// в очередь и исполняет возвращённую обёртку вместо оригинала. Внешний монитор
// в любой момент читает агрегаты через Metrics.
package metrics

// Unit: единица работы: непрозрачное действие без аргументов.
// Сборщик не смотрит внутрь, учитывается только исход (nil или ошибка) и время.
type Unit func() error

// Collector определяет интерфейс сбора метрик исполнения.
// Реализации: ActiveCollector (активный) и InactiveCollector (no-op).
type Collector interface {
	// Track возвращает единицу работы с тем же наблюдаемым поведением
	// (та же ошибка, те же побочные эффекты, та же паника), которая при исполнении
	// дополнительно учитывается в статистике сборщика.
	// Никогда не паникует: если обёртку построить не удалось, возвращается
	// исходный unit без учёта.
	Track(unit Unit) Unit

	// Metrics возвращает текущий срез агрегатов.
	// ok == false означает "сборщик не собирает данные", отличать отключённые
	// метрики от нулевой активности нужно по ok, а не по нулевым полям.
	// Не блокируется на исполняющихся задачах и не меняет состояние.
	Metrics() (snapshot Snapshot, ok bool)
}
