package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("crawl defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxPages != 10 {
			t.Errorf("expected MaxPages 10, got %d", cfg.MaxPages)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout 30s, got %v", cfg.Timeout)
		}
		if cfg.RequestTimeout != 10*time.Second {
			t.Errorf("expected RequestTimeout 10s, got %v", cfg.RequestTimeout)
		}
		if cfg.MaxBodySize != 512*1024 {
			t.Errorf("expected MaxBodySize 512KiB, got %d", cfg.MaxBodySize)
		}
		if cfg.Render {
			t.Error("expected Render to be off")
		}
	})

	t.Run("report and batch defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != "simple" {
			t.Errorf("expected Format simple, got %q", cfg.Format)
		}
		if cfg.Concurrency != 5 {
			t.Errorf("expected Concurrency 5, got %d", cfg.Concurrency)
		}
		if cfg.Region != "US" {
			t.Errorf("expected Region US, got %q", cfg.Region)
		}
		if cfg.SiteConfigs == nil || cfg.SiteConfigs.Sites == nil {
			t.Error("expected an empty site config file")
		}
	})

	t.Run("server defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.Server.Addr != ":8000" {
			t.Errorf("expected Addr :8000, got %q", cfg.Server.Addr)
		}
		if cfg.Server.JobStore != "memory" {
			t.Errorf("expected JobStore memory, got %q", cfg.Server.JobStore)
		}
		if cfg.Server.JobTTL != time.Hour {
			t.Errorf("expected JobTTL 1h, got %v", cfg.Server.JobTTL)
		}
		if !strings.HasSuffix(cfg.Server.DataDir, AppName) {
			t.Errorf("expected DataDir under %s, got %q", AppName, cfg.Server.DataDir)
		}
	})
}

// TestConfigValidate tests one validation rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Targets = []string{"https://acme.com"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid config", mutate: func(*Config) {}, wantErr: nil},
		{name: "ten targets", mutate: func(c *Config) { c.Targets = make([]string, 10) }, wantErr: nil},
		{name: "no targets", mutate: func(c *Config) { c.Targets = nil }, wantErr: ErrNoTarget},
		{name: "eleven targets", mutate: func(c *Config) { c.Targets = make([]string, 11) }, wantErr: ErrTooManyTargets},
		{name: "zero max pages", mutate: func(c *Config) { c.MaxPages = 0 }, wantErr: ErrInvalidMaxPages},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero request timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: ErrInvalidRequestTimeout},
		{name: "negative rate", mutate: func(c *Config) { c.RateLimit = -1 }, wantErr: ErrInvalidRateLimit},
		{name: "zero rate disables limiter", mutate: func(c *Config) { c.RateLimit = 0 }, wantErr: nil},
		{name: "negative body size", mutate: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: ErrInvalidConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigValidateServer(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid without targets", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().ValidateServer(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty address", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Server.Addr = ""
		if err := cfg.ValidateServer(); !errors.Is(err, ErrInvalidListenAddr) {
			t.Errorf("expected ErrInvalidListenAddr, got %v", err)
		}
	})

	t.Run("zero ttl", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Server.JobTTL = 0
		if err := cfg.ValidateServer(); !errors.Is(err, ErrInvalidJobTTL) {
			t.Errorf("expected ErrInvalidJobTTL, got %v", err)
		}
	})

	t.Run("crawl settings are checked too", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = 0
		if err := cfg.ValidateServer(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})
}

func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		file := NewFile()
		file.Server = ServerConfig{
			Addr:      "127.0.0.1:9000",
			JobStore:  "redis",
			RedisAddr: "cache:6379",
			RedisDB:   2,
			JobTTL:    10 * time.Minute,
		}
		cfg.ApplyFile(file)

		if cfg.Server.Addr != "127.0.0.1:9000" {
			t.Errorf("expected addr from file, got %q", cfg.Server.Addr)
		}
		if cfg.Server.JobStore != "redis" || cfg.Server.RedisAddr != "cache:6379" || cfg.Server.RedisDB != 2 {
			t.Errorf("expected redis settings from file, got %+v", cfg.Server)
		}
		if cfg.Server.JobTTL != 10*time.Minute {
			t.Errorf("expected ttl 10m, got %v", cfg.Server.JobTTL)
		}
		if cfg.SiteConfigs != file {
			t.Error("expected SiteConfigs to point at the loaded file")
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(NewFile())

		if cfg.Server.Addr != DefaultListenAddr {
			t.Errorf("expected default addr, got %q", cfg.Server.Addr)
		}
		if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("expected default shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
		}
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.SiteConfigs == nil {
			t.Error("expected SiteConfigs to stay set")
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected data dir ending in %s, got %q", AppName, dir)
	}
	if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected config dir ending in %s, got %q", AppName, dir)
	}
}
