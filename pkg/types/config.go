// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ash/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CheckConfig holds settings for the remote existence check.
type CheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// Validate enables the doi.org existence probe for every identifier.
	Validate bool `json:"validate" yaml:"validate"`

	// BaseURL is the handle API endpoint; the DOI is appended to it.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// RateLimit caps probes per second. Zero disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CacheDB is an optional SQLite file that persists definitive probe
	// results across runs. Empty keeps results in memory only.
	CacheDB string `json:"cache_db,omitempty" yaml:"cache_db,omitempty"`
}

// ReportFormat selects how a report is rendered.
type ReportFormat string

const (
	FormatText     ReportFormat = "text"
	FormatJSON     ReportFormat = "json"
	FormatYAML     ReportFormat = "yaml"
	FormatMarkdown ReportFormat = "markdown"
)

// Config groups everything a report run needs beyond the paper itself.
type Config struct {
	// DatabasePath is the retraction dataset CSV.
	DatabasePath string `json:"database_path" yaml:"database_path"`

	// Format selects the report renderer.
	Format ReportFormat `json:"format" yaml:"format"`

	Check CheckConfig `json:"check" yaml:"check"`
}
