package output

import (
	"encoding/json"
	"io"
)

// JSONWriter форматирует Result в JSON с отступами.
type JSONWriter struct{}

// NewJSONWriter создаёт JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Write сериализует result в JSON. Summary попадает в metadata.summary.
func (j *JSONWriter) Write(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if result == nil {
		return encoder.Encode(result)
	}
	return encoder.Encode(withSummary(result))
}
