package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusExporter публикует срезы Collector как Prometheus метрики.
// Реализует prometheus.Collector: при каждом сборе вызывает Metrics()
// и отдаёт константные метрики. Для InactiveCollector ничего не отдаёт.
type PrometheusExporter struct {
	source Collector

	tracked     *prometheus.Desc
	started     *prometheus.Desc
	completed   *prometheus.Desc
	failed      *prometheus.Desc
	untracked   *prometheus.Desc
	pending     *prometheus.Desc
	running     *prometheus.Desc
	runSeconds  *prometheus.Desc
	maxRun      *prometheus.Desc
	waitSeconds *prometheus.Desc
	maxWait     *prometheus.Desc
}

// NewPrometheusExporter создаёт экспортёр для source.
// Регистрирует описания метрик:
//   - <ns>_tasks_tracked_total, _started_total, _completed_total, _failed_total, _untracked_total (counter)
//   - <ns>_tasks_pending, <ns>_tasks_running (gauge)
//   - <ns>_task_run_seconds_total, <ns>_task_wait_seconds_total (counter)
//   - <ns>_task_run_seconds_max, <ns>_task_wait_seconds_max (gauge)
func NewPrometheusExporter(source Collector, namespace string) *PrometheusExporter {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}

	return &PrometheusExporter{
		source:      source,
		tracked:     desc("tasks_tracked_total", "Total number of tasks wrapped for tracking"),
		started:     desc("tasks_started_total", "Total number of tracked tasks that started execution"),
		completed:   desc("tasks_completed_total", "Total number of tracked tasks that completed without error"),
		failed:      desc("tasks_failed_total", "Total number of tracked tasks that returned an error or panicked"),
		untracked:   desc("tasks_untracked_total", "Total number of tasks executed without tracking after a wrap failure"),
		pending:     desc("tasks_pending", "Number of tracked tasks waiting in queue"),
		running:     desc("tasks_running", "Number of tracked tasks currently executing"),
		runSeconds:  desc("task_run_seconds_total", "Cumulative task execution time in seconds"),
		maxRun:      desc("task_run_seconds_max", "Longest single task execution time in seconds"),
		waitSeconds: desc("task_wait_seconds_total", "Cumulative time tasks spent queued in seconds"),
		maxWait:     desc("task_wait_seconds_max", "Longest single task queue wait in seconds"),
	}
}

// Describe отправляет описания всех метрик экспортёра.
func (e *PrometheusExporter) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		e.tracked, e.started, e.completed, e.failed, e.untracked,
		e.pending, e.running, e.runSeconds, e.maxRun, e.waitSeconds, e.maxWait,
	} {
		ch <- d
	}
}

// Collect читает текущий срез и отправляет значения метрик.
func (e *PrometheusExporter) Collect(ch chan<- prometheus.Metric) {
	s, ok := e.source.Metrics()
	if !ok {
		return
	}

	counter := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v)
	}
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}

	counter(e.tracked, float64(s.Tracked))
	counter(e.started, float64(s.Started))
	counter(e.completed, float64(s.Completed))
	counter(e.failed, float64(s.Failed))
	counter(e.untracked, float64(s.Untracked))
	gauge(e.pending, float64(s.Pending()))
	gauge(e.running, float64(s.Running()))
	counter(e.runSeconds, s.TotalRunTime.Seconds())
	gauge(e.maxRun, s.MaxRunTime.Seconds())
	counter(e.waitSeconds, s.TotalWaitTime.Seconds())
	gauge(e.maxWait, s.MaxWaitTime.Seconds())
}

// NewRegistry создаёт отдельный registry с экспортёром для source.
// Используем Register вместо MustRegister для избежания panic.
func NewRegistry(source Collector, namespace string) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewPrometheusExporter(source, namespace)); err != nil {
		return nil, fmt.Errorf("ошибка регистрации экспортёра метрик: %w", err)
	}
	return registry, nil
}
