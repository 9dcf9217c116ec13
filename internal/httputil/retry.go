// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil holds the HTTP plumbing shared by remote lookups.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first backoff interval after an HTTP 429. Tests
// shrink it to keep runs fast.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps how long a server-supplied Retry-After may stall us.
var MaxRetryAfter = time.Minute

// DefaultUserAgent identifies outgoing requests when none is configured.
const DefaultUserAgent = "ash (+https://github.com/pdiddy/ash)"

// NewRequest builds a request bound to ctx with the User-Agent header set.
// An empty userAgent falls back to DefaultUserAgent.
func NewRequest(ctx context.Context, method, url, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// DoWithRetry sends req and, while the server answers 429 Too Many
// Requests, retries up to maxRetries more times. A maxRetries of zero or
// less sends the request exactly once.
//
// The wait before retry n is RetryBaseDelay * 2^n unless the response
// carries a Retry-After header in seconds, which is honoured up to
// MaxRetryAfter. A cancelled ctx during a wait returns ctx.Err(). When
// retries run out the final 429 response is returned for the caller to
// inspect.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, MaxRetryAfter)
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
