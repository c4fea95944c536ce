package jobstore

import "errors"

var (
	// ErrJobNotFound is returned by Get when the job does not exist or
	// has expired.
	ErrJobNotFound = errors.New("job not found")

	// ErrUnknownBackend is returned for a backend name other than memory,
	// redis or sqlite.
	ErrUnknownBackend = errors.New("unknown job store backend")

	// ErrInvalidJob is returned by Put for a nil job or an empty ID.
	ErrInvalidJob = errors.New("invalid job")

	// ErrDatabaseNotFound is returned when the SQLite database must
	// already exist and does not.
	ErrDatabaseNotFound = errors.New("job database not found")
)
