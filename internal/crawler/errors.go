package crawler

import "errors"

// ErrParseFailure marks a page whose HTML could not be read. It never
// stops a crawl; the page is extracted from its raw HTML alone.
var ErrParseFailure = errors.New("parse failure")
