package pipeline

import "errors"

var (
	// ErrNoResult is returned when a pipeline finished without any step
	// producing a result.
	ErrNoResult = errors.New("pipeline produced no result")

	// ErrEmptyBatch is returned when a batch holds no URLs.
	ErrEmptyBatch = errors.New("batch has no URLs")

	// ErrBatchTooLarge is returned when a batch holds more than
	// model.BatchMaxURLs URLs.
	ErrBatchTooLarge = errors.New("batch has too many URLs")
)
