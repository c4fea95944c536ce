// Package pipeline is the entry point of a contact extraction.
//
// A Pipeline runs a Job through an ordered list of steps. The contact
// pipeline built by NewContactPipeline validates the start URL and then
// crawls it:
//
//	p := pipeline.NewContactPipeline(spider)
//	result := p.Run(ctx, model.NewCrawlRequest("example.com"))
//
// Run never returns an error. A start URL that fails validation yields a
// result with Success set to false, Error populated and every category
// empty.
//
// BatchProcessor runs several start URLs concurrently with errgroup,
// bounded by a concurrency limit and by the batch page and budget caps.
package pipeline
