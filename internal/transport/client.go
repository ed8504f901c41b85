package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
	"github.com/agentstation/esxsync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication and
// rate-limit handling.
type Client struct {
	http       *http.Client
	auth       Authenticator
	apiKey     string
	provider   string
	maxRetries int
	retryDelay time.Duration
	maxBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxRetries bounds how often a rate-limited request is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryDelay sets the wait used when a 429 response has no usable
// Retry-After header.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithProvider sets the provider name used in errors.
func WithProvider(name string) Option {
	return func(c *Client) { c.provider = name }
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultHTTPTimeout},
		auth:       auth,
		apiKey:     apiKey,
		provider:   "unknown",
		maxRetries: constants.MaxRateLimitRetries,
		retryDelay: constants.RateLimitRetryDelay,
		maxBackoff: constants.MaxRetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name used in errors.
func (c *Client) Provider() string {
	return c.provider
}

// Do performs an HTTP request with authentication applied. A 429 response
// is retried after its Retry-After delay, at most the configured number of
// times; the last response is returned as is once retries run out.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: c.provider,
			Method:   "api_key",
			Message:  "no API key configured",
			Err:      errors.ErrAPIKeyRequired,
		}
	}
	c.auth.Apply(req, c.apiKey)

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := logging.FromContext(ctx)
	for attempt := 0; ; attempt++ {
		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(errors.ErrCanceled, ctx.Err())
			}
			return nil, &errors.APIError{
				Provider: c.provider,
				Endpoint: req.URL.Path,
				Message:  "request failed",
				Err:      err,
			}
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}

		wait := c.retryAfter(resp.Header.Get("Retry-After"))
		_ = resp.Body.Close()
		logger.Debug().
			Str("endpoint", req.URL.Path).
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg("rate limited, retrying")

		if err := sleep(ctx, wait); err != nil {
			return nil, errors.Join(errors.ErrCanceled, err)
		}
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewValidationError("url", url, err.Error())
	}
	return c.Do(ctx, req)
}

// retryAfter parses a Retry-After value given in seconds or as an HTTP date.
func (c *Client) retryAfter(value string) time.Duration {
	wait := c.retryDelay
	if value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		} else if at, err := http.ParseTime(value); err == nil {
			wait = time.Until(at)
		}
	}
	if wait < 0 {
		wait = 0
	}
	if c.maxBackoff > 0 && wait > c.maxBackoff {
		wait = c.maxBackoff
	}
	return wait
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
