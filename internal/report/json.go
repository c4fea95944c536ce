package report

import (
	"encoding/json"
	"io"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// JSONWriter outputs results as JSON, using the same field names as the
// HTTP API. URLs are written as-is, without HTML escaping of & < >.
type JSONWriter struct {
	baseWriter
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values with indent, each line starting with
// prefix.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter returns a compact JSON writer unless an indent option is
// given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result as a JSON object.
func (w *JSONWriter) Write(result *model.AggregatedResult) (int, error) {
	return w.encode(result)
}

// WriteBatch outputs the batch as {total, successful, results}.
func (w *JSONWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	return w.encode(batch)
}

// WriteExport outputs the flat export rows with their summary.
func (w *JSONWriter) WriteExport(export *model.Export) (int, error) {
	return w.encode(export)
}

// encode writes v as one JSON document terminated by a newline.
func (w *JSONWriter) encode(v any) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := json.NewEncoder(cw)
	enc.SetEscapeHTML(false)
	if w.prefix != "" || w.indent != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	err := enc.Encode(v)
	return cw.n, err
}
