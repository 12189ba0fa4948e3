package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service endpoint. A trailing slash is ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/") }
}

// WithTimeout sets the upper bound of every call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithHTTPDoer replaces the HTTP transport. The client does not own an
// injected doer: Close leaves it untouched.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) { c.doer = doer }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// WithLogger sets the logger used for per-call debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCircuitBreaker makes Pack fail fast after threshold consecutive
// transport failures or retryable API errors, for the given cooldown.
// A threshold below 1 disables it; a cooldown of 0 means 30s.
func WithCircuitBreaker(threshold int, cooldown time.Duration) Option {
	return func(c *Client) {
		c.breakerThreshold = threshold
		c.breakerCooldown = cooldown
	}
}
