package report

import "errors"

// ErrUnknownFormat is returned for an output format name that no writer
// handles.
var ErrUnknownFormat = errors.New("unknown output format")
