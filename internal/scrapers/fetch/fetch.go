// Package fetch provides the shared HTTP client used by all remote
// scrapers. It applies a common user agent, request timeout, retry
// with exponential backoff, and proactive rate limiting so individual
// scrapers do not have to reimplement transport concerns.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	// UserAgent identifies regwatch to upstream regulatory servers.
	UserAgent = "regwatch/1.0 (+https://github.com/greenchem-labs/regwatch-cli)"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive throttle (requests per second).
	// Regulatory portals are slow and unforgiving; stay polite.
	DefaultRate = 2.0

	// MaxRetries is the retry budget for transient failures.
	MaxRetries = 3

	// MaxBodySize caps response bodies at 50 MB. Inventory exports are
	// large but bounded; anything bigger is a broken endpoint.
	MaxBodySize = 50 << 20
)

// HTTPError is returned for non-2xx responses. It carries the status
// code so callers can branch on 404 (try the next CAS number) versus
// transient server errors.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch: HTTP %d from %s", e.StatusCode, e.URL)
}

// IsNotFound checks if the error is an HTTP 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRetryable reports whether the error is worth retrying.
// 429 and 5xx responses are; 4xx responses are not.
func IsRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests ||
			httpErr.StatusCode >= 500
	}
	// Network-level errors are retryable.
	return err != nil
}

// Client is a rate-limited, retrying HTTP client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRate overrides the proactive throttle rate.
func WithRate(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// NewClient creates a client with the default timeout and throttle.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), 1),
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a URL and returns the response body.
// Transient failures are retried with exponential backoff.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	operation := func() error {
		b, err := c.getOnce(ctx, url)
		if err != nil {
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// GetJSON fetches a URL and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("fetch: decoding %s: %w", url, err)
	}
	return nil
}

// Head probes a URL without downloading the body.
// Used by scrapers to validate their endpoint is reachable.
func (c *Client) Head(ctx context.Context, url string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("fetch: building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	// Some portals reject HEAD outright; treat 405 as reachable.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusMethodNotAllowed {
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}
	return nil
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: building request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("fetch: reading body: %w", err)
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}
