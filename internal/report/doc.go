// Package report renders extraction results.
//
// Four writers implement the Writer interface:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: the result structure as JSON
//   - MarkdownWriter: a Markdown document with a category pie chart
//   - CSVWriter: the flat export rows, one contact per line
//
// Each writer renders a single AggregatedResult with Write and a batch
// with WriteBatch. NewWriter picks the writer for a Format.
package report
