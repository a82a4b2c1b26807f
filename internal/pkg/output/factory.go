package output

import "strings"

// Поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatYAML = "yaml"
)

// NewWriter создаёт Writer по формату (case-insensitive).
// При неизвестном формате возвращает TextWriter.
func NewWriter(format string) Writer {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONWriter()
	case FormatYAML, "yml":
		return NewYAMLWriter()
	default:
		return NewTextWriter()
	}
}
