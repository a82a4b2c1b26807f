package output

import (
	"time"

	"github.com/Kargones/taskdispatch/internal/pkg/metrics"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SnapshotReport: представление среза метрик для отчёта.
// Длительности переведены в миллисекунды, производные значения посчитаны.
type SnapshotReport struct {
	// MetricsEnabled: false, если сборщик не собирает данные.
	// Остальные поля при этом нулевые и смысла не имеют.
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metricsEnabled"`

	SnapshotVersion int     `json:"snapshot_version,omitempty" yaml:"snapshotVersion,omitempty"`
	Tracked         int64   `json:"tracked" yaml:"tracked"`
	Completed       int64   `json:"completed" yaml:"completed"`
	Failed          int64   `json:"failed" yaml:"failed"`
	Untracked       int64   `json:"untracked" yaml:"untracked"`
	Pending         int64   `json:"pending" yaml:"pending"`
	Running         int64   `json:"running" yaml:"running"`
	AvgRunMs        float64 `json:"avg_run_ms" yaml:"avgRunMs"`
	MaxRunMs        float64 `json:"max_run_ms" yaml:"maxRunMs"`
	AvgWaitMs       float64 `json:"avg_wait_ms" yaml:"avgWaitMs"`
	MaxWaitMs       float64 `json:"max_wait_ms" yaml:"maxWaitMs"`

	// Throughput: завершённых задач в секунду за окно elapsed.
	Throughput float64 `json:"throughput_per_sec" yaml:"throughputPerSec"`
}

// numberPrinter форматирует числа с разделителями разрядов.
var numberPrinter = message.NewPrinter(language.Russian)

// NewSnapshotReport строит отчёт из результата Collector.Metrics().
// elapsed: окно, за которое считается throughput.
func NewSnapshotReport(snapshot metrics.Snapshot, ok bool, elapsed time.Duration) *SnapshotReport {
	if !ok {
		return &SnapshotReport{MetricsEnabled: false}
	}

	return &SnapshotReport{
		MetricsEnabled:  true,
		SnapshotVersion: snapshot.Version,
		Tracked:         snapshot.Tracked,
		Completed:       snapshot.Completed,
		Failed:          snapshot.Failed,
		Untracked:       snapshot.Untracked,
		Pending:         snapshot.Pending(),
		Running:         snapshot.Running(),
		AvgRunMs:        millis(snapshot.AvgRunTime()),
		MaxRunMs:        millis(snapshot.MaxRunTime),
		AvgWaitMs:       millis(snapshot.AvgWaitTime()),
		MaxWaitMs:       millis(snapshot.MaxWaitTime),
		Throughput:      snapshot.Throughput(elapsed),
	}
}

// Summary строит SummaryInfo с ключевыми метриками отчёта.
func (r *SnapshotReport) Summary() *SummaryInfo {
	s := NewSummaryInfo()
	if !r.MetricsEnabled {
		s.AddWarning("сбор метрик отключён")
		return s
	}

	s.AddMetric("Обёрнуто задач", numberPrinter.Sprintf("%d", r.Tracked), "")
	s.AddMetric("Завершено", numberPrinter.Sprintf("%d", r.Completed), "")
	s.AddMetric("С ошибкой", numberPrinter.Sprintf("%d", r.Failed), "")
	s.AddMetric("В очереди", numberPrinter.Sprintf("%d", r.Pending), "")
	s.AddMetric("Среднее время исполнения", numberPrinter.Sprintf("%.2f", r.AvgRunMs), "мс")
	s.AddMetric("Максимальное время исполнения", numberPrinter.Sprintf("%.2f", r.MaxRunMs), "мс")
	s.AddMetric("Среднее ожидание", numberPrinter.Sprintf("%.2f", r.AvgWaitMs), "мс")
	s.AddMetric("Пропускная способность", numberPrinter.Sprintf("%.1f", r.Throughput), "задач/с")

	if r.Untracked > 0 {
		s.AddWarning(numberPrinter.Sprintf("%d задач исполнено без учёта", r.Untracked))
	}
	if r.Failed > 0 {
		s.AddWarning(numberPrinter.Sprintf("%d задач завершились с ошибкой", r.Failed))
	}
	return s
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
