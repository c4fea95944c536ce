package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate and Config.ValidateServer
// and can be matched with errors.Is.
var (
	// ErrNoTarget is returned when no start URL is given to extract.
	ErrNoTarget = errors.New("no target specified: provide at least one URL")

	// ErrTooManyTargets is returned when more URLs are given than one batch accepts.
	ErrTooManyTargets = errors.New("too many targets: a batch accepts at most 10 URLs")

	// ErrInvalidMaxPages is returned when the page cap is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidTimeout is returned when the total crawl budget is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRequestTimeout is returned when the per-request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("invalid request timeout: must be positive")

	// ErrInvalidRateLimit is returned when the politeness rate is negative.
	// Use 0 to disable rate limiting.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidListenAddr is returned when the server listen address is empty.
	ErrInvalidListenAddr = errors.New("invalid listen address: must not be empty")

	// ErrInvalidJobTTL is returned when the job retention period is not positive.
	ErrInvalidJobTTL = errors.New("invalid job ttl: must be positive")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
