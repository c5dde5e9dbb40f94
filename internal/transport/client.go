// Package transport provides the session-aware HTTP client used by the
// switchboard library. It keeps the service's session cookies in a
// cookie jar, applies the bearer token once one is issued, and stamps
// every request with the common headers the service expects.
package transport

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unitworks/switchboard/pkg/constants"
	"github.com/unitworks/switchboard/pkg/errors"
	"github.com/unitworks/switchboard/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// DefaultUserAgent identifies the library when none is configured.
const DefaultUserAgent = "switchboard-go"

// Client provides HTTP client functionality with session continuity.
// Cookies issued during sign-in ride along on every later request via
// the jar; a bearer token, once set, is applied by the authenticator.
type Client struct {
	http      *http.Client
	auth      Authenticator
	token     string
	userAgent string
	headers   http.Header
	logger    *zerolog.Logger
}

// Option defines a function that configures a Client.
type Option func(*Client)

// WithHTTPClient sets the base HTTP client. The client is copied so the
// session cookie jar never leaks into the caller's client.
func WithHTTPClient(base *http.Client) Option {
	return func(c *Client) {
		if base != nil {
			clone := *base
			c.http = &clone
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithAuthenticator sets how the session token is applied to requests.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new transport client with a fresh cookie jar.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      &BearerAuth{},
		userAgent: DefaultUserAgent,
		headers:   make(http.Header),
		logger:    logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.WrapIO("create", "cookie jar", err)
	}
	c.http.Jar = jar

	return c, nil
}

// SetToken stores the session's bearer token for later requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the stored bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// Token returns the stored bearer token, empty when none is set.
func (c *Client) Token() string {
	return c.token
}

// SetHeader adds or replaces a default header sent on every request.
func (c *Client) SetHeader(key, value string) {
	c.headers.Set(key, value)
}

// ResetSession discards the session state: the bearer token and every
// cookie in the jar.
func (c *Client) ResetSession() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.WrapIO("create", "cookie jar", err)
	}
	c.http.Jar = jar
	c.token = ""
	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostForm performs a form-encoded POST request.
func (c *Client) PostForm(ctx context.Context, rawURL string, values url.Values) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// do sends the request and debug-logs the exchange.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("HTTP request failed")
		return nil, errors.WrapAPI(req.URL.String(), 0, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")

	return resp, nil
}
