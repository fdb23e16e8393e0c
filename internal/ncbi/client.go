// Package ncbi implements the shared HTTP layer for NCBI E-utilities:
// common parameter injection (tool, email, api_key), token-bucket rate
// limiting per NCBI policy, and bounded response reads.
package ncbi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the NCBI E-utilities base URL.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	// DefaultTool identifies this application to NCBI.
	DefaultTool = "pubharvest"
	// DefaultEmail is the contact email sent to NCBI when the caller
	// does not supply one.
	DefaultEmail = "pubharvest@users.noreply.github.com"

	// NCBI allows 3 requests/second anonymously, 10 with an API key.
	rpsAnonymous = 3
	rpsWithKey   = 10

	// DefaultMaxResponseBytes caps response reads; efetch batches can
	// be large but anything past this is a malfunctioning endpoint.
	DefaultMaxResponseBytes int64 = 50 * 1024 * 1024

	retryAttempts = 2
)

// retryBaseWait is the base backoff after an HTTP 429. Tests shrink it
// to avoid real sleeps.
var retryBaseWait = 700 * time.Millisecond

// Client is a rate-limited HTTP client for E-utilities endpoints.
// The contact email is explicit, caller-owned configuration: it is set
// once at construction and injected into every request.
type Client struct {
	baseURL  string
	apiKey   string
	tool     string
	email    string
	httpc    *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the E-utilities base URL (tests point this at
// an httptest server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithAPIKey sets the NCBI API key and raises the rate limit accordingly.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
		if key != "" {
			c.limiter = rate.NewLimiter(rate.Limit(rpsWithKey), 1)
		}
	}
}

// WithTool sets the tool identifier sent with every request.
func WithTool(tool string) Option {
	return func(c *Client) { c.tool = tool }
}

// WithEmail sets the contact email sent with every request.
func WithEmail(email string) Option {
	return func(c *Client) { c.email = email }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithMaxResponseBytes sets the maximum allowed response body size.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// NewClient builds a Client with NCBI defaults applied, then options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		tool:     DefaultTool,
		email:    DefaultEmail,
		limiter:  rate.NewLimiter(rate.Limit(rpsAnonymous), 1),
		httpc:    &http.Client{Timeout: 30 * time.Second},
		maxBytes: DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured endpoint base.
func (c *Client) BaseURL() string { return c.baseURL }

// Email reports the configured contact email.
func (c *Client) Email() string { return c.email }

// Get performs a rate-limited GET against endpoint (e.g. "esearch.fcgi")
// with the common NCBI parameters merged in, and returns the body.
// HTTP 429 is retried with backoff; every other non-200 is an error.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		params.Set("tool", c.tool)
	}
	if c.email != "" {
		params.Set("email", c.email)
	}

	joined, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}
	reqURL := joined + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= retryAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		body, retryAfter, retryable, err := c.doOnce(ctx, reqURL, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		if attempt == retryAttempts {
			break
		}

		// The server's Retry-After directive wins over computed backoff.
		wait := retryAfter
		if wait <= 0 {
			wait = retryBaseWait * time.Duration(1<<attempt)
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("NCBI request failed after %d retries: %w", retryAttempts, lastErr)
}

// doOnce issues a single request. The boolean reports whether the
// failure is worth retrying (only HTTP 429 is); on a 429 the duration
// carries the server's Retry-After directive, zero when absent.
func (c *Client) doOnce(ctx context.Context, reqURL, endpoint string) ([]byte, time.Duration, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, false, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		wait := retryAfterDuration(resp.Header.Get("Retry-After"))
		return nil, wait, true, fmt.Errorf("NCBI rate limit exceeded (HTTP 429); consider an API key")
	case resp.StatusCode != http.StatusOK:
		return nil, 0, false, fmt.Errorf("NCBI returned HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, 0, false, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, 0, false, fmt.Errorf("response exceeds %s", byteCount(c.maxBytes))
	}

	return body, 0, false, nil
}

// retryAfterDuration parses a Retry-After header value, which is either
// a delay in seconds or an HTTP date. Unparseable or non-positive
// values yield zero.
func retryAfterDuration(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs > 0 {
			return time.Duration(secs) * time.Second
		}
		return 0
	}

	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

func byteCount(n int64) string {
	if n >= 1<<20 {
		return strconv.FormatInt(n>>20, 10) + " MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
