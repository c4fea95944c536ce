// Package fetcher retrieves single pages over HTTP(S).
//
// # Attempt ladder
//
// A Fetcher tries an ordered list of attempts for every URL and stops at
// the first one that yields an HTML or plain-text page:
//
//  1. TLS verified, original protocol
//  2. TLS verified, alternate protocol (http <-> https)
//  3. TLS unverified, original protocol
//  4. TLS unverified, alternate protocol
//
// All attempts share one deadline. A 401, 403 or 429 response ends the
// ladder immediately with ErrFetchRefused, and so does an image, audio,
// video or PDF response (ErrContentTypeMismatch). When every attempt fails
// the returned *Error lists up to three distinct causes.
//
// # Bodies
//
// Bodies are decoded from gzip, deflate or brotli, converted to UTF-8 from
// the declared or sniffed charset, and silently truncated at the
// configured size cap.
//
// # Rendering
//
// Renderer is the capability a crawler uses when static HTML is too sparse.
// ChromedpRenderer implements it with headless Chrome; callers construct it
// explicitly and the rest of the module only sees the interface.
package fetcher
