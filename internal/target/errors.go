package target

import "errors"

// Validation errors returned by Normalize.
var (
	// ErrInvalidURL is returned when the input cannot be turned into an
	// absolute http(s) URL with a usable host.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrBlockedHost is returned when the host is a loopback or
	// private-network address.
	ErrBlockedHost = errors.New("local and private network addresses are not allowed")
)
