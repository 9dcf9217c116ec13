// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package existence asks the doi.org handle service whether identifiers
// are registered.
package existence

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/ash/internal/httputil"
	"github.com/pdiddy/ash/pkg/types"
)

// DefaultBaseURL is the doi.org handle API; the DOI is appended verbatim.
const DefaultBaseURL = "https://doi.org/api/handles/"

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 15 * time.Second

// Checker probes doi.org with HEAD requests and caches definitive answers.
type Checker struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      Cache
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
	probes     atomic.Int64
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the handle API prefix (for testing).
func WithBaseURL(u string) Option {
	return func(c *Checker) {
		c.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Checker) {
		c.userAgent = ua
	}
}

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(c *Checker) {
		c.cache = cache
	}
}

// WithRateLimit caps probes per second. Zero or less disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Checker) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithMaxRetries sets how often a 429 answer is retried.
func WithMaxRetries(n int) Option {
	return func(c *Checker) {
		c.maxRetries = n
	}
}

// WithLogger sets the logger for cache failures and probe results.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Checker. Without options it talks to doi.org and keeps
// answers in memory for its lifetime.
func New(opts ...Option) *Checker {
	c := &Checker{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		cache:      NewMemoryCache(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Checker from the check settings. cache may be nil
// to keep answers in memory.
func NewFromConfig(cfg types.CheckConfig, cache Cache, logger *slog.Logger) *Checker {
	opts := []Option{
		WithUserAgent(cfg.UserAgent),
		WithRateLimit(cfg.RateLimit),
		WithMaxRetries(cfg.MaxRetries),
		WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cache != nil {
		opts = append(opts, WithCache(cache))
	}
	return New(opts...)
}

// Exists reports whether doi is registered. A 200 answer means it is, a 404
// means it is not; both are cached. Any other status is ExistenceUnknown
// and is asked again next time. Transport failures return ExistenceUnknown
// with the error.
func (c *Checker) Exists(ctx context.Context, doi string) (types.Existence, error) {
	if exists, ok, err := c.cache.Get(doi); err != nil {
		c.logger.Warn("existence cache lookup failed", "doi", doi, "error", err)
	} else if ok {
		return types.ExistenceOf(exists), nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return types.ExistenceUnknown, err
		}
	}

	req, err := httputil.NewRequest(ctx, http.MethodHead, c.endpoint(doi), c.userAgent)
	if err != nil {
		return types.ExistenceUnknown, fmt.Errorf("building request for %s: %w", doi, err)
	}

	c.probes.Add(1)
	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return types.ExistenceUnknown, fmt.Errorf("probing %s: %w", doi, err)
	}
	resp.Body.Close()

	var result types.Existence
	switch resp.StatusCode {
	case http.StatusOK:
		result = types.ExistenceTrue
	case http.StatusNotFound:
		result = types.ExistenceFalse
	default:
		c.logger.Debug("inconclusive existence probe", "doi", doi, "status", resp.StatusCode)
		return types.ExistenceUnknown, nil
	}

	if err := c.cache.Put(doi, result == types.ExistenceTrue); err != nil {
		c.logger.Warn("existence cache store failed", "doi", doi, "error", err)
	}
	return result, nil
}

// Probes returns how many HTTP probes this Checker has sent.
func (c *Checker) Probes() int64 {
	return c.probes.Load()
}

// endpoint appends doi to the base URL, escaping characters that are not
// legal in a path while keeping the prefix/suffix slash.
func (c *Checker) endpoint(doi string) string {
	return c.baseURL + (&url.URL{Path: doi}).EscapedPath()
}
