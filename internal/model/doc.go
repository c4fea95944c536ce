// Package model defines the data structures shared by the crawler, the
// extractors, the job store and the report writers.
//
// The main types are:
//   - CrawlRequest: the immutable input of one crawl
//   - FetchResult: one fetched (or rendered) page
//   - ExtractionResult: the contact records found on a single page
//   - AggregatedResult: the merged, deduplicated result of a whole crawl
//   - Aggregator: the fold that turns ExtractionResults into an AggregatedResult
//
// Models live in their own package so that crawler, extract, report and
// server can share them without import cycles. Every externally visible
// type is JSON-serializable with the field names the HTTP API returns.
package model
