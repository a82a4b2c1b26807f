package output

import (
	"fmt"
	"io"
	"strings"
)

const summaryDivider = "══════════════════════════════════════════════════════"

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write выводит строку статуса, ошибку (если есть) и summary блок.
// Data в тексте не выводится целиком: ключевые значения должны быть в Summary.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
		return nil
	}

	return t.writeSummary(w, result)
}

func (t *TextWriter) writeSummary(w io.Writer, result *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n📊 Сводка\n%s\n", summaryDivider, summaryDivider)

	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		fmt.Fprintf(&b, "⏱️  Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs))
	}

	if result.Summary != nil {
		for _, m := range result.Summary.KeyMetrics {
			if m.Unit != "" {
				fmt.Fprintf(&b, "📈 %s: %s %s\n", m.Name, m.Value, m.Unit)
			} else {
				fmt.Fprintf(&b, "📈 %s: %s\n", m.Name, m.Value)
			}
		}

		if result.Summary.WarningsCount > 0 {
			fmt.Fprintf(&b, "\n⚠️  Предупреждений: %d\n", result.Summary.WarningsCount)
			for _, warn := range result.Summary.Warnings {
				fmt.Fprintf(&b, "   • %s\n", warn)
			}
		}
	}

	fmt.Fprintf(&b, "%s\n", summaryDivider)

	_, err := io.WriteString(w, b.String())
	return err
}

// formatDuration форматирует миллисекунды: "450мс", "2.5с", "3м 5с".
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
