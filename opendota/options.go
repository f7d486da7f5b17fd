package opendota

import (
	"net/http"
	"time"

	"github.com/user/opendota-mcp/logging"
)

type Option func(*Client)

// WithAPIKey forwards the key as an api_key query parameter on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout bounds every request; there is no other cancellation point.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.log = l }
}
