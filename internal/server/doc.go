// Package server exposes the contact extraction engine over HTTP.
//
// Routes:
//
//	GET  /health                 liveness with version and timestamp
//	POST /extract                synchronous crawl, returns the aggregated result
//	POST /extract/async          starts a background crawl, returns a job id
//	GET  /extract/status/{id}    job status and result
//	POST /batch-extract          up to 10 URLs crawled concurrently
//	POST /extract/export         flattened rows as JSON, or CSV with ?format=csv
//	GET  /metrics                Prometheus metrics
//
// The router is built with go-chi/chi. Every route allows any origin and
// caps request bodies at 10 KB. Async job state lives in a jobstore.Store
// passed to New, so several server processes can share a Redis or SQLite
// store.
package server
