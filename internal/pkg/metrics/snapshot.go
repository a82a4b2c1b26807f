package metrics

import "time"

// SnapshotVersion: версия набора полей Snapshot.
// Увеличивается при изменении смысла существующих полей; новые поля
// добавляются без смены версии.
const SnapshotVersion = 1

// Snapshot: неизменяемый срез агрегатов на момент вызова Metrics.
// Сравним через ==: два чтения без исполнения задач между ними равны.
type Snapshot struct {
	// Version: версия формата среза (SnapshotVersion).
	Version int `json:"version" yaml:"version"`

	// Since: момент создания сборщика.
	Since time.Time `json:"since" yaml:"since"`

	// Tracked: количество задач, прошедших через Track.
	Tracked int64 `json:"tracked" yaml:"tracked"`

	// Started: количество задач, начавших исполнение.
	Started int64 `json:"started" yaml:"started"`

	// Completed: количество задач, завершившихся без ошибки.
	Completed int64 `json:"completed" yaml:"completed"`

	// Failed: количество задач, вернувших ошибку или запаниковавших.
	Failed int64 `json:"failed" yaml:"failed"`

	// Untracked: количество задач, которые не удалось обернуть.
	// Они исполнялись, но в остальные счётчики не попали.
	Untracked int64 `json:"untracked" yaml:"untracked"`

	// TotalRunTime: суммарное время исполнения.
	TotalRunTime time.Duration `json:"total_run_time_ns" yaml:"totalRunTime"`

	// MaxRunTime: максимальное время исполнения одной задачи.
	MaxRunTime time.Duration `json:"max_run_time_ns" yaml:"maxRunTime"`

	// TotalWaitTime: суммарное время ожидания в очереди (от Track до старта).
	TotalWaitTime time.Duration `json:"total_wait_time_ns" yaml:"totalWaitTime"`

	// MaxWaitTime: максимальное время ожидания одной задачи.
	MaxWaitTime time.Duration `json:"max_wait_time_ns" yaml:"maxWaitTime"`
}

// Finished возвращает количество завершённых задач (успешных и неуспешных).
func (s Snapshot) Finished() int64 {
	return s.Completed + s.Failed
}

// Running возвращает количество задач, исполняющихся в момент среза.
func (s Snapshot) Running() int64 {
	return nonNegative(s.Started - s.Finished())
}

// Pending возвращает глубину очереди: задачи, обёрнутые, но ещё не начатые.
// Задачи, отменённые диспетчером до старта, остаются в этом счётчике.
func (s Snapshot) Pending() int64 {
	return nonNegative(s.Tracked - s.Started)
}

// AvgRunTime возвращает среднее время исполнения завершённых задач.
func (s Snapshot) AvgRunTime() time.Duration {
	if s.Finished() == 0 {
		return 0
	}
	return s.TotalRunTime / time.Duration(s.Finished())
}

// AvgWaitTime возвращает среднее время ожидания начатых задач.
func (s Snapshot) AvgWaitTime() time.Duration {
	if s.Started == 0 {
		return 0
	}
	return s.TotalWaitTime / time.Duration(s.Started)
}

// Sub возвращает приращение счётчиков относительно prev.
// Максимумы не вычитаются: в результате остаются текущие значения.
func (s Snapshot) Sub(prev Snapshot) Snapshot {
	return Snapshot{
		Version:       s.Version,
		Since:         s.Since,
		Tracked:       s.Tracked - prev.Tracked,
		Started:       s.Started - prev.Started,
		Completed:     s.Completed - prev.Completed,
		Failed:        s.Failed - prev.Failed,
		Untracked:     s.Untracked - prev.Untracked,
		TotalRunTime:  s.TotalRunTime - prev.TotalRunTime,
		MaxRunTime:    s.MaxRunTime,
		TotalWaitTime: s.TotalWaitTime - prev.TotalWaitTime,
		MaxWaitTime:   s.MaxWaitTime,
	}
}

// Throughput возвращает количество завершённых задач в секунду за окно window.
// Обычно вызывается на результате Sub.
func (s Snapshot) Throughput(window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	return float64(s.Finished()) / window.Seconds()
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
