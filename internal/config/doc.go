// Package config provides configuration structures and utilities for
// contact-extractor. It holds the crawl limits, fetch settings, report
// preferences and HTTP service settings, and loads the optional YAML
// configuration file with per-site overrides.
package config
