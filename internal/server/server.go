package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/waseemnasir2k26/contact-extractor/internal/jobstore"
	"github.com/waseemnasir2k26/contact-extractor/internal/pipeline"
)

// Server defaults.
const (
	// DefaultAddr is the listen address used when WithAddr is not given.
	DefaultAddr = ":8000"

	// DefaultSweepInterval is how often expired jobs are swept from stores
	// that need it.
	DefaultSweepInterval = 5 * time.Minute

	// DefaultVersion is reported by /health when WithVersion is not given.
	DefaultVersion = "(devel)"
)

// Server serves the extraction API.
type Server struct {
	crawler pipeline.Crawler
	store   jobstore.Store
	metrics *Metrics
	logger  *slog.Logger

	addr          string
	version       string
	sweepInterval time.Duration
	concurrency   int

	router     http.Handler
	httpServer *http.Server

	// baseCtx bounds async jobs; it outlives the requests that start them
	// and is cancelled by Shutdown.
	baseCtx    context.Context
	cancelBase context.CancelFunc
	jobs       sync.WaitGroup
	sweeper    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// WithSweepInterval sets how often expired jobs are swept. Non-positive
// values disable sweeping.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Server) {
		s.sweepInterval = d
	}
}

// WithBatchConcurrency sets how many crawls of one batch run at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMetrics replaces the server's metrics. Mostly useful in tests.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a server that crawls with c and keeps async jobs in store.
// The server does not own store; the caller closes it after Shutdown.
func New(c pipeline.Crawler, store jobstore.Store, opts ...Option) *Server {
	s := &Server{
		crawler:       c,
		store:         store,
		logger:        slog.Default(),
		addr:          DefaultAddr,
		version:       DefaultVersion,
		sweepInterval: DefaultSweepInterval,
		concurrency:   pipeline.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	s.baseCtx, s.cancelBase = context.WithCancel(context.Background())
	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.baseCtx },
	}
	return s
}

func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(limitBody)

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Post("/extract", s.handleExtract)
	r.Post("/extract/async", s.handleExtractAsync)
	r.Get("/extract/status/{jobID}", s.handleJobStatus)
	r.Post("/extract/export", s.handleExport)
	r.Post("/batch-extract", s.handleBatchExtract)

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start starts the job sweeper and serves HTTP until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	s.startSweeper()
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", ln.Addr().String(), "version", s.version)
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight requests and
// async jobs until ctx is done, then cancels whatever is still running.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	err := s.httpServer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.jobs.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("cancelling unfinished async jobs", "error", ctx.Err())
	}

	s.cancelBase()
	s.sweeper.Wait()
	return err
}

// startSweeper periodically removes expired jobs when the store needs it.
// It must be called with s.mu held.
func (s *Server) startSweeper() {
	sweeper, ok := s.store.(jobstore.Sweeper)
	if !ok || s.sweepInterval <= 0 {
		return
	}

	s.sweeper.Add(1)
	go func() {
		defer s.sweeper.Done()

		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.baseCtx.Done():
				return
			case <-ticker.C:
				n, err := sweeper.Sweep(s.baseCtx)
				if err != nil {
					s.logger.Warn("job sweep failed", "error", err)
					continue
				}
				if n > 0 {
					s.logger.Debug("swept expired jobs", "count", n)
				}
			}
		}
	}()
}
