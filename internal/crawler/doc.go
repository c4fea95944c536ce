// Package crawler walks a small number of pages on one site and feeds them
// to the contact extractors.
//
// # Components
//
//   - Parser: turns HTML into a bounded list of links and a bounded
//     visible-text rendering, ignoring scripts, styles and embedded frames
//   - LinkCandidate: a discovered link with its traversal Priority
//   - Spider: the crawl scheduler
//
// # Scheduling
//
// A crawl moves through Idle, Seeded, Visiting and Exhausted. While
// visiting it pops the next URL, marks it visited, fetches it with
// min(request timeout, remaining budget), extracts contact data and
// queues same-site links. Links whose path looks like a contact page
// ("contact", "about", "team", "support", "imprint") go to the front of
// the queue; all others go to the back. Blogs, shops, login pages, assets
// and binary files are never queued.
//
// The crawl ends when the queue is empty, the page cap is reached, the
// budget is spent or the context is cancelled. None of these is an error.
//
// # Same site
//
// Two URLs are on the same site when their registrable domains match, so
// "www.example.co.uk" and "shop.example.co.uk" are one site. The list of
// public suffixes comes from golang.org/x/net/publicsuffix.
//
// # Usage
//
//	f, _ := fetcher.New()
//	spider := crawler.NewSpider(f, extract.New(), crawler.WithRequestTimeout(5*time.Second))
//	result := spider.Crawl(ctx, model.NewCrawlRequest("https://example.com"))
package crawler
