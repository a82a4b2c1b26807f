package output

// SummaryInfo: сводка ключевых показателей для вывода.
type SummaryInfo struct {
	// KeyMetrics: ключевые метрики запуска.
	KeyMetrics []KeyMetric `json:"key_metrics,omitempty" yaml:"keyMetrics,omitempty"`

	// WarningsCount: количество предупреждений.
	WarningsCount int `json:"warnings_count" yaml:"warningsCount"`

	// Warnings: тексты предупреждений.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// KeyMetric: одна ключевая метрика.
type KeyMetric struct {
	// Name: название ("Завершено", "Среднее время").
	Name string `json:"name" yaml:"name"`

	// Value: уже отформатированное значение.
	Value string `json:"value" yaml:"value"`

	// Unit: единица измерения, опционально ("мс", "задач/с").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// NewSummaryInfo создаёт пустой SummaryInfo.
func NewSummaryInfo() *SummaryInfo {
	return &SummaryInfo{
		KeyMetrics: make([]KeyMetric, 0),
		Warnings:   make([]string, 0),
	}
}

// AddMetric добавляет метрику.
func (s *SummaryInfo) AddMetric(name, value, unit string) {
	s.KeyMetrics = append(s.KeyMetrics, KeyMetric{Name: name, Value: value, Unit: unit})
}

// AddWarning добавляет предупреждение.
func (s *SummaryInfo) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
	s.WarningsCount++
}
