package server

import "errors"

// Request errors reported to clients as 400 responses.
var (
	// ErrInvalidBody is returned when the request body is not valid JSON
	// for the route.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrBodyTooLarge is returned when the request body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrTooManyURLs is returned when a batch holds more URLs than allowed.
	ErrTooManyURLs = errors.New("maximum 10 URLs allowed per batch")

	// ErrNoURLs is returned when a batch holds no URLs.
	ErrNoURLs = errors.New("at least one URL is required")
)
