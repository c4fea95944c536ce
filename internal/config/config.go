package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "contact-extractor"

	// DefaultMaxPages is the number of pages crawled per start URL.
	DefaultMaxPages = model.DefaultMaxPages

	// DefaultTimeout is the total wall-clock budget of one crawl.
	DefaultTimeout = model.DefaultTimeout

	// DefaultRequestTimeout bounds a single page fetch.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize = 512 * 1024

	// DefaultConcurrency is the number of crawls run at once in a batch.
	DefaultConcurrency = 5

	// DefaultRegion is the region used to parse phone numbers without a
	// country code.
	DefaultRegion = "US"

	// DefaultFormat is the report format written by extract.
	DefaultFormat = "simple"

	// DefaultListenAddr is the address the HTTP service binds to.
	DefaultListenAddr = ":8000"

	// DefaultJobStore is the backend holding async job status.
	DefaultJobStore = "memory"

	// DefaultRedisAddr is the Redis address used by the redis job store.
	DefaultRedisAddr = "localhost:6379"

	// DefaultJobTTL is how long finished async jobs stay queryable.
	DefaultJobTTL = time.Hour

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP service.
	DefaultShutdownTimeout = 15 * time.Second
)

// Config holds all configuration options for contact-extractor.
// It is populated from CLI flags and the optional configuration file and
// passed explicitly to the components that need it.
type Config struct {
	// MaxPages is the maximum number of pages to crawl per start URL.
	// Values above the hard cap are clamped when the crawl starts.
	MaxPages int

	// Timeout is the total budget of one crawl, shared by all its pages.
	Timeout time.Duration

	// RequestTimeout bounds every single fetch attempt ladder.
	RequestTimeout time.Duration

	// Render enables the headless browser fallback for sparse pages.
	Render bool

	// ChromePath points to the Chrome or Chromium binary used for rendering.
	// When empty, chromedp looks the browser up on PATH.
	ChromePath string

	// RateLimit is the maximum number of fetches per second within one
	// crawl. Zero disables the limiter.
	RateLimit float64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// UserAgent overrides the browser-like User-Agent sent with requests.
	UserAgent string

	// ProbePaths pushes common contact paths such as /contact and /about
	// to the front of the queue after the start page.
	ProbePaths bool

	// Region is the CLDR region code used for phone parsing.
	Region string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default.
	MaxBodySize int64

	// Concurrency is the number of concurrent crawls in batch mode.
	Concurrency int

	// Format selects the report writer: simple, json, markdown or csv.
	Format string

	// ReportFile is the output file path for the report. When empty the
	// report is written to stdout.
	ReportFile string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// SiteConfigs holds the defaults and per-site overrides loaded from
	// the configuration file.
	SiteConfigs *File

	// Targets is the list of start URLs given to extract.
	Targets []string

	// Server holds the HTTP service settings used by serve.
	Server ServerConfig
}

// ServerConfig holds the settings of the HTTP service.
type ServerConfig struct {
	// Addr is the listen address, for example ":8000".
	Addr string `yaml:"addr,omitempty"`

	// JobStore selects the async job backend: memory, redis or sqlite.
	JobStore string `yaml:"job_store,omitempty"`

	// RedisAddr is the Redis server address for the redis backend.
	RedisAddr string `yaml:"redis_addr,omitempty"`

	// RedisPassword authenticates against Redis.
	RedisPassword string `yaml:"redis_password,omitempty"`

	// RedisDB selects the Redis logical database.
	RedisDB int `yaml:"redis_db,omitempty"`

	// JobTTL is how long async jobs are kept after their last update.
	JobTTL time.Duration `yaml:"job_ttl,omitempty"`

	// DataDir holds the SQLite job database for the sqlite backend.
	DataDir string `yaml:"data_dir,omitempty"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxPages:       DefaultMaxPages,
		Timeout:        DefaultTimeout,
		RequestTimeout: DefaultRequestTimeout,
		Region:         DefaultRegion,
		MaxBodySize:    DefaultMaxBodySize,
		Concurrency:    DefaultConcurrency,
		Format:         DefaultFormat,
		SiteConfigs:    NewFile(),
		Server:         NewServerConfig(),
	}
}

// NewServerConfig returns the default HTTP service settings.
func NewServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            DefaultListenAddr,
		JobStore:        DefaultJobStore,
		RedisAddr:       DefaultRedisAddr,
		JobTTL:          DefaultJobTTL,
		DataDir:         XDGDataDir(),
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// ApplyFile copies the server section of f into c for every field the
// file sets. Site overrides stay in f and are resolved per target with
// File.GetSiteConfig.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.SiteConfigs = f

	s := f.Server
	if s.Addr != "" {
		c.Server.Addr = s.Addr
	}
	if s.JobStore != "" {
		c.Server.JobStore = s.JobStore
	}
	if s.RedisAddr != "" {
		c.Server.RedisAddr = s.RedisAddr
	}
	if s.RedisPassword != "" {
		c.Server.RedisPassword = s.RedisPassword
	}
	if s.RedisDB != 0 {
		c.Server.RedisDB = s.RedisDB
	}
	if s.JobTTL > 0 {
		c.Server.JobTTL = s.JobTTL
	}
	if s.DataDir != "" {
		c.Server.DataDir = s.DataDir
	}
	if s.ShutdownTimeout > 0 {
		c.Server.ShutdownTimeout = s.ShutdownTimeout
	}
}

// XDGDataDir returns the XDG data directory for contact-extractor.
// On Linux: ~/.local/share/contact-extractor
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for contact-extractor.
// On Linux: ~/.config/contact-extractor
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the settings used by extract and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if len(c.Targets) > model.BatchMaxURLs {
		return ErrTooManyTargets
	}
	return c.validateCrawl()
}

// ValidateServer checks the settings used by serve.
func (c *Config) ValidateServer() error {
	if err := c.validateCrawl(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return ErrInvalidListenAddr
	}
	if c.Server.JobTTL <= 0 {
		return ErrInvalidJobTTL
	}
	return nil
}

func (c *Config) validateCrawl() error {
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
