package report

import (
	"encoding/csv"
	"io"

	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// CSVWriter outputs the flat export rows of a result, one contact per
// line, under a header row.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header and the rows of result.
func (w *CSVWriter) Write(result *model.AggregatedResult) (int, error) {
	return w.WriteExport(model.NewExport(result))
}

// WriteExport outputs the header and the rows of export.
func (w *CSVWriter) WriteExport(export *model.Export) (int, error) {
	return w.writeRows(export.Rows)
}

// WriteBatch outputs one header followed by the rows of every successful
// result in the batch.
func (w *CSVWriter) WriteBatch(batch *model.BatchResult) (int, error) {
	var rows []model.ExportRow
	for _, item := range batch.Results {
		if item.Data == nil {
			continue
		}
		rows = append(rows, model.NewExport(item.Data).Rows...)
	}
	return w.writeRows(rows)
}

func (w *CSVWriter) writeRows(rows []model.ExportRow) (int, error) {
	cw := &countingWriter{w: w.output}
	out := csv.NewWriter(cw)

	if err := out.Write(model.ExportHeader); err != nil {
		return cw.n, err
	}
	for _, row := range rows {
		if err := out.Write(row.Fields()); err != nil {
			return cw.n, err
		}
	}

	out.Flush()
	return cw.n, out.Error()
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
