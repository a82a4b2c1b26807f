package output

import "io"

// Writer определяет интерфейс форматирования результатов.
// Реализации: JSONWriter, TextWriter, YAMLWriter.
type Writer interface {
	// Write форматирует result и записывает в w.
	Write(w io.Writer, result *Result) error
}
