// Package target validates and normalizes user-supplied start URLs.
//
// Normalize is the only entry point a crawl needs: it strips control
// characters, forces an http(s) scheme and refuses hosts that point at the
// local machine or a private network. The private-range check is a literal
// prefix match on the host string, so it also rejects names such as
// "10.example.com"; that is intended, since it can only err on the side of
// refusing a target.
package target
