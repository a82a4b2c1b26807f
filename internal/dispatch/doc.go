// Package dispatch реализует диспетчер задач, владеющий сборщиком метрик.
//
// Диспетчер вызывает Collector.Track для каждой задачи непосредственно перед
// постановкой в очередь и исполняет возвращённую обёртку ровно один раз.
// Включены ли метрики, диспетчер не знает: при отключённых метриках Track
// возвращает задачу как есть.
//
//	d := dispatch.New(collector, logger, dispatch.WithWorkers(8))
//	_ = d.Start(ctx)
//	task, err := d.Submit(ctx, func() error { return work() })
//	err = task.Wait(ctx)
//	_ = d.Stop(ctx)
//
// Задача, контекст которой отменён до старта, не исполняется и в метриках
// остаётся только как обёрнутая (Pending).
package dispatch
