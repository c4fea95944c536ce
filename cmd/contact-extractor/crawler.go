package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/waseemnasir2k26/contact-extractor/internal/config"
	"github.com/waseemnasir2k26/contact-extractor/internal/crawler"
	"github.com/waseemnasir2k26/contact-extractor/internal/extract"
	"github.com/waseemnasir2k26/contact-extractor/internal/fetcher"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// siteCrawler crawls with the per-site cookies, headers and path filters
// of the configuration file. One spider is built lazily per configured
// site and shared by every crawl of that site.
type siteCrawler struct {
	cfg      *config.Config
	renderer fetcher.Renderer
	logger   *slog.Logger

	mu      sync.Mutex
	spiders map[string]*crawler.Spider
}

// newSiteCrawler creates the crawler used by extract and serve. A headless
// renderer is attached when rendering is enabled globally or for any
// configured site.
func newSiteCrawler(cfg *config.Config, logger *slog.Logger) *siteCrawler {
	c := &siteCrawler{
		cfg:     cfg,
		logger:  logger,
		spiders: make(map[string]*crawler.Spider),
	}
	if renderingWanted(cfg) {
		c.renderer = fetcher.NewChromedpRenderer(
			fetcher.WithExecPath(cfg.ChromePath),
			fetcher.WithRenderUserAgent(cfg.UserAgent),
			fetcher.WithRenderMaxBodySize(cfg.MaxBodySize),
			fetcher.WithSessions(cfg.Concurrency),
			fetcher.WithRenderLogger(logger),
		)
	}
	return c
}

func renderingWanted(cfg *config.Config) bool {
	if cfg.Render {
		return true
	}
	if cfg.SiteConfigs == nil {
		return false
	}
	if cfg.SiteConfigs.Defaults.Render {
		return true
	}
	for _, site := range cfg.SiteConfigs.Sites {
		if site.Render {
			return true
		}
	}
	return false
}

// Crawl implements pipeline.Crawler.
func (c *siteCrawler) Crawl(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	key := c.cfg.SiteConfigs.SiteKey(req.URL)
	site := c.cfg.SiteConfigs.GetSiteConfig(req.URL)
	if site.Render {
		req.RenderMode = true
	}

	spider, err := c.spider(key, site)
	if err != nil {
		return model.FailedResult(req.URL, err)
	}
	return spider.Crawl(ctx, req)
}

func (c *siteCrawler) spider(key string, site config.SiteConfig) (*crawler.Spider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.spiders[key]; ok {
		return s, nil
	}

	s, err := c.newSpider(site)
	if err != nil {
		return nil, err
	}
	c.spiders[key] = s
	return s, nil
}

func (c *siteCrawler) newSpider(site config.SiteConfig) (*crawler.Spider, error) {
	f, err := fetcher.New(
		fetcher.WithUserAgent(c.cfg.UserAgent),
		fetcher.WithMaxBodySize(c.cfg.MaxBodySize),
		fetcher.WithProxy(c.cfg.ProxyAddress),
		fetcher.WithCookie(site.Cookie),
		fetcher.WithHeaders(site.Headers),
		fetcher.WithLogger(c.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	opts := []crawler.SpiderOption{
		crawler.WithRequestTimeout(c.cfg.RequestTimeout),
		crawler.WithRateLimit(c.cfg.RateLimit),
		crawler.WithProbeContactPaths(c.cfg.ProbePaths),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
		crawler.WithSpiderLogger(c.logger),
	}
	if c.renderer != nil {
		opts = append(opts, crawler.WithRenderer(c.renderer))
	}

	return crawler.NewSpider(f, extract.New(extract.WithRegion(c.cfg.Region)), opts...), nil
}
