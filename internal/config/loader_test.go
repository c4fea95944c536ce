package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.contact-extractor")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `defaults:
  cookie: "consent=yes"
  ignore:
    - "/careers/*"
sites:
  acme.com:
    cookie: "session=xyz"
    max_pages: 20
    render: true
    headers:
      Authorization: "Bearer token"
    follow:
      - "/contact*"
server:
  addr: ":9090"
  job_store: sqlite
  job_ttl: 30m
`)

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Defaults.Cookie != "consent=yes" {
			t.Errorf("expected default cookie, got %q", cfg.Defaults.Cookie)
		}
		if len(cfg.Defaults.IgnorePatterns) != 1 {
			t.Errorf("expected 1 ignore pattern, got %d", len(cfg.Defaults.IgnorePatterns))
		}

		site, ok := cfg.Sites["acme.com"]
		if !ok {
			t.Fatal("expected acme.com in sites")
		}
		if site.MaxPages != 20 || !site.Render {
			t.Errorf("expected max_pages 20 and render, got %d %v", site.MaxPages, site.Render)
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected Authorization header, got %v", site.Headers)
		}
		if len(site.FollowPatterns) != 1 {
			t.Errorf("expected 1 follow pattern, got %d", len(site.FollowPatterns))
		}

		if cfg.Server.Addr != ":9090" || cfg.Server.JobStore != "sqlite" {
			t.Errorf("expected server section, got %+v", cfg.Server)
		}
		if cfg.Server.JobTTL != 30*time.Minute {
			t.Errorf("expected job_ttl 30m, got %v", cfg.Server.JobTTL)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `invalid: yaml: content: [}`)
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Sites map", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "defaults:\n  render: true\n")
		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "defaults: {}")
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile("/nonexistent/path/config.yaml"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing path is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Load("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit path is loaded", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "sites:\n  acme.com:\n    cookie: a=b\n")
		cf, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.GetSiteConfig("acme.com").Cookie != "a=b" {
			t.Errorf("expected cookie a=b, got %+v", cf.Sites)
		}
	})

	t.Run("invalid file wraps the path", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "sites: [")
		if _, err := Load(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}
