package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/waseemnasir2k26/contact-extractor/internal/config"
	"github.com/waseemnasir2k26/contact-extractor/internal/jobstore"
	"github.com/waseemnasir2k26/contact-extractor/internal/server"
)

// redisPasswordEnv names the environment variable holding the Redis
// password, so it does not have to be written to the config file.
const redisPasswordEnv = "CONTACT_EXTRACTOR_REDIS_PASSWORD"

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contact extraction HTTP service",
		Long: `Serve exposes contact extraction over HTTP.

Endpoints:
  GET  /                      service information
  GET  /health                health check
  GET  /metrics               Prometheus metrics
  POST /extract               extract contacts from one website
  POST /extract/async         start an extraction job
  GET  /extract/status/{id}   poll an extraction job
  POST /extract/export        extract and export as JSON or CSV
  POST /batch-extract         extract contacts from up to 10 websites

Async jobs are kept in memory by default. Use --job-store redis or sqlite
to keep them across restarts or share them between instances.

Examples:
  # Listen on port 8080
  contact-extractor serve --addr :8080

  # Keep async jobs in Redis
  contact-extractor serve --job-store redis --redis-addr localhost:6379`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addCrawlFlags(cmd)

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .contact-extractor in current or home directory)")
	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Address to listen on")
	cmd.Flags().String("job-store", config.DefaultJobStore,
		"Async job store: memory, redis or sqlite")
	cmd.Flags().String("redis-addr", config.DefaultRedisAddr,
		"Redis address for --job-store redis (password via "+redisPasswordEnv+")")
	cmd.Flags().Int("redis-db", 0,
		"Redis database number for --job-store redis")
	cmd.Flags().Duration("job-ttl", config.DefaultJobTTL,
		"How long async job results are kept")
	cmd.Flags().String("data-dir", "",
		"Directory of the SQLite job database (default: XDG data directory)")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of concurrent crawls per batch request")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd, "json")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServe(ctx, cmd, cfg, logger)
}

// buildServeConfig creates a Config for serve. Flags given explicitly win
// over the server section of the configuration file.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := applyCrawlFlags(cmd, cfg); err != nil {
		return nil, err
	}

	var err error
	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cmd, cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		if cfg.Server.Addr, err = flags.GetString("addr"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("job-store") {
		if cfg.Server.JobStore, err = flags.GetString("job-store"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("redis-addr") {
		if cfg.Server.RedisAddr, err = flags.GetString("redis-addr"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("redis-db") {
		if cfg.Server.RedisDB, err = flags.GetInt("redis-db"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("job-ttl") {
		if cfg.Server.JobTTL, err = flags.GetDuration("job-ttl"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("data-dir") {
		if cfg.Server.DataDir, err = flags.GetString("data-dir"); err != nil {
			return nil, err
		}
	}
	if password := os.Getenv(redisPasswordEnv); password != "" {
		cfg.Server.RedisPassword = password
	}

	return cfg, nil
}

// runServe opens the job store and runs the HTTP service until ctx is
// cancelled, then shuts it down gracefully.
func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	backend, err := jobstore.ParseBackend(cfg.Server.JobStore)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	store, err := jobstore.Open(ctx, jobstore.Config{
		Backend:       backend,
		TTL:           cfg.Server.JobTTL,
		RedisAddr:     cfg.Server.RedisAddr,
		RedisPassword: cfg.Server.RedisPassword,
		RedisDB:       cfg.Server.RedisDB,
		SQLiteDir:     cfg.Server.DataDir,
	})
	if err != nil {
		return fmt.Errorf("failed to open job store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close job store", "error", err)
		}
	}()

	srv := server.New(newSiteCrawler(cfg, logger), store,
		server.WithAddr(cfg.Server.Addr),
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
		server.WithBatchConcurrency(cfg.Concurrency),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s (job store: %s)\n", cfg.Server.Addr, backend)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}
