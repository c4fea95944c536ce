package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/waseemnasir2k26/contact-extractor/internal/config"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/pipeline"
	"github.com/waseemnasir2k26/contact-extractor/internal/report"
)

// errAllFailed is returned when no URL of a batch could be extracted.
var errAllFailed = errors.New("extraction failed for every URL")

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <url> [url...]",
		Short: "Extract contact information from one or more websites",
		Long: `Extract crawls each website and prints the contact information it finds.

Up to 10 URLs can be given. Several URLs are crawled concurrently and are
limited to 10 pages and 60 seconds each.

Examples:
  # Extract contacts from a single website
  contact-extractor extract example.com

  # Crawl up to 20 pages within one minute
  contact-extractor extract -p 20 -t 1m https://example.com

  # Extract from several sites and save a CSV file
  contact-extractor extract -f csv -o contacts.csv site1.com site2.com

  # Render JavaScript-heavy pages with headless Chrome
  contact-extractor extract --render https://spa.example.com

Configuration file (.contact-extractor) example:
  sites:
    example.com:
      cookie: "consent=accepted"
      max_pages: 20
      follow:
        - "/contact*"`,
		Args: cobra.ArbitraryArgs,
		RunE: runExtractCmd,
	}

	addCrawlFlags(cmd)

	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of concurrent crawls when several URLs are given")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .contact-extractor in current or home directory)")

	// Report flags
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Report format: simple, json, markdown or csv")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("quiet", "q", false,
		"Do not show the progress spinner")

	return cmd
}

// addCrawlFlags registers the flags shared by extract and serve.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		fmt.Sprintf("Maximum number of pages to crawl per website (max %d)", model.MaxPagesLimit))
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		fmt.Sprintf("Total time budget per website (max %s)", model.MaxTimeout))
	cmd.Flags().Duration("request-timeout", config.DefaultRequestTimeout,
		"Timeout for each page request")
	cmd.Flags().BoolP("render", "r", false,
		"Render pages with little static text in headless Chrome")
	cmd.Flags().String("chrome-path", "",
		"Path to the Chrome or Chromium binary used with --render")
	cmd.Flags().Float64("rate", 0,
		"Maximum page requests per second per website (0 disables the limit)")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:1080)")
	cmd.Flags().String("user-agent", "",
		"Override the User-Agent header")
	cmd.Flags().Bool("probe-paths", false,
		"Queue common contact paths such as /contact and /about right after the start page")
	cmd.Flags().String("region", config.DefaultRegion,
		"Region code used to parse phone numbers without a country code")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
}

// applyCrawlFlags copies the shared crawl flags into cfg.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	cfg.RequestTimeout, err = cmd.Flags().GetDuration("request-timeout")
	if err != nil {
		return err
	}

	cfg.Render, err = cmd.Flags().GetBool("render")
	if err != nil {
		return err
	}

	cfg.ChromePath, err = cmd.Flags().GetString("chrome-path")
	if err != nil {
		return err
	}

	cfg.RateLimit, err = cmd.Flags().GetFloat64("rate")
	if err != nil {
		return err
	}

	cfg.ProxyAddress, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return err
	}

	cfg.ProbePaths, err = cmd.Flags().GetBool("probe-paths")
	if err != nil {
		return err
	}

	cfg.Region, err = cmd.Flags().GetString("region")
	if err != nil {
		return err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return nil
}

// loadConfigFile loads the configuration file named by --config, or the
// first one found in the default locations, into cfg.
func loadConfigFile(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	file, err := config.Load(cfg.ConfigFilePath)
	if err != nil {
		return err
	}
	cfg.ApplyFile(file)
	return nil
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd, "text")
	if err != nil {
		return err
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prog := newProgress(cmd.ErrOrStderr(), !quiet && !cfg.Verbose)
	return runExtract(ctx, cfg, cmd, prog, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := applyCrawlFlags(cmd, cfg); err != nil {
		return nil, err
	}

	var err error
	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Targets = args

	return cfg, nil
}

// buildRequests turns the targets into crawl requests. A site max_pages
// applies unless --max-pages was given explicitly.
func buildRequests(cfg *config.Config, maxPagesFlagSet bool) []model.CrawlRequest {
	reqs := make([]model.CrawlRequest, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		req := model.NewCrawlRequest(target)
		req.MaxPages = cfg.MaxPages
		req.Timeout = cfg.Timeout
		req.RenderMode = cfg.Render

		if site := cfg.SiteConfigs.GetSiteConfig(target); site.MaxPages > 0 && !maxPagesFlagSet {
			req.MaxPages = site.MaxPages
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// runExtract crawls every target and writes the report.
func runExtract(ctx context.Context, cfg *config.Config, cmd *cobra.Command, prog *progress, logger *slog.Logger) error {
	crawler := newSiteCrawler(cfg, logger)
	reqs := buildRequests(cfg, cmd.Flags().Changed("max-pages"))

	logger.Info("starting extraction",
		"targets", len(reqs),
		"max_pages", cfg.MaxPages,
		"timeout", cfg.Timeout,
		"render", cfg.Render,
	)

	if len(reqs) == 1 {
		return runSingleExtract(ctx, cfg, crawler, reqs[0], prog, logger, cmd.OutOrStdout())
	}
	return runBatchExtract(ctx, cfg, crawler, reqs, prog, logger, cmd.OutOrStdout())
}

// runSingleExtract crawls one website.
func runSingleExtract(
	ctx context.Context,
	cfg *config.Config,
	crawler pipeline.Crawler,
	req model.CrawlRequest,
	prog *progress,
	logger *slog.Logger,
	stdout io.Writer,
) error {
	p := pipeline.NewContactPipeline(crawler, pipeline.WithLogger(logger))

	prog.start(fmt.Sprintf(" Extracting contacts from %s", req.URL))
	result := p.Run(ctx, req)
	prog.stop()

	if err := writeReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.Write(result)
		return err
	}); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("extraction failed for %s: %s", req.URL, result.Error)
	}
	return nil
}

// runBatchExtract crawls several websites concurrently using BatchProcessor.
func runBatchExtract(
	ctx context.Context,
	cfg *config.Config,
	crawler pipeline.Crawler,
	reqs []model.CrawlRequest,
	prog *progress,
	logger *slog.Logger,
	stdout io.Writer,
) error {
	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewContactPipeline(crawler,
				pipeline.WithLogger(logger),
				pipeline.WithLimits(model.BatchMaxPages, model.BatchMaxTimeout),
			)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	results := make([]*model.AggregatedResult, len(reqs))
	var (
		mu   sync.Mutex
		done int
	)

	prog.start(fmt.Sprintf(" [0/%d] Extracting contacts...", len(reqs)))
	err := bp.ProcessBatchWithCallback(ctx, reqs, func(result *model.AggregatedResult, index int) {
		mu.Lock()
		defer mu.Unlock()

		results[index] = result
		done++
		prog.update(fmt.Sprintf(" [%d/%d] Finished %s", done, len(reqs), reqs[index].URL))
	})
	prog.stop()

	urls := make([]string, len(reqs))
	for i, req := range reqs {
		urls[i] = req.URL
		if results[i] == nil {
			results[i] = model.FailedResult(req.URL, context.Cause(ctx))
		}
	}

	batch := model.NewBatchResult(urls, results)
	logger.Info("batch extraction complete",
		"total", batch.Total,
		"successful", batch.Successful,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	if werr := writeReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteBatch(batch)
		return err
	}); werr != nil {
		return werr
	}

	if err != nil {
		return err
	}
	if batch.Successful == 0 {
		return errAllFailed
	}
	return nil
}

// writeReport writes the report in the configured format to the report
// file, or to stdout when none is set.
func writeReport(cfg *config.Config, stdout io.Writer, write func(report.Writer) error) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports hold personal contact data, so only the owner may read them.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	w, err := report.NewWriter(format, output)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// progress shows a spinner on the terminal while crawls run.
type progress struct {
	spinner *spinner.Spinner
}

// newProgress returns a progress indicator writing to w. A disabled
// indicator does nothing.
func newProgress(w io.Writer, enabled bool) *progress {
	if !enabled {
		return &progress{}
	}
	return &progress{
		spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w)),
	}
}

func (p *progress) start(msg string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Suffix = msg
	p.spinner.Start()
}

func (p *progress) update(msg string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Lock()
	p.spinner.Suffix = msg
	p.spinner.Unlock()
}

func (p *progress) stop() {
	if p.spinner == nil {
		return
	}
	p.spinner.Stop()
}
