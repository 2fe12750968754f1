// Package api implements the authenticated request gateway for the
// pilgrimage platform API. It wraps outbound HTTP calls with bearer-token
// injection, detects expired sessions, coordinates a single shared
// token-refresh operation across concurrent callers, and retries the
// original request exactly once after a successful refresh.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/openpilgrim/go-admin-client/credentials"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds every network call made by the client.
const DefaultTimeout = 10 * time.Second

// Client performs HTTP calls against the platform API. All typed service
// wrappers (auth, admin, manager) go through a single Client so that the
// refresh/retry state machine is written and exercised once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      credentials.Store
	logger     zerolog.Logger

	// refreshGroup guarantees at most one in-flight refresh; every caller
	// that observes a 401 while one is outstanding joins it and sees the
	// same outcome.
	refreshGroup singleflight.Group

	onSessionInvalidated func()
}

// Option modifies a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller owns the
// transport configuration; the gateway only relies on Do semantics.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the per-request timeout budget on the default
// HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger attaches a structured logger. The client logs request
// lifecycle events at debug level and session teardown at warn level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSessionInvalidated registers a callback fired when the session is
// torn down after an unrecoverable 401 (refresh failed, or the retried
// request was still unauthorized). The callback fires at most once per
// stored session; the UI layer uses it to fall back to the
// unauthenticated state.
func WithSessionInvalidated(fn func()) Option {
	return func(c *Client) {
		c.onSessionInvalidated = fn
	}
}

// New creates a Client for the API at baseURL. Tokens are read from and
// written to store; the client never caches them independently.
func New(baseURL string, store credentials.Store, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[api.New] credential store is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// forceLogout clears the stored session and notifies the application
// exactly once. The credential store reports whether anything was actually
// cleared, so concurrent unrecoverable failures collapse into a single
// observable logout.
func (c *Client) forceLogout() {
	cleared, err := c.store.Clear()
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to clear credential store on forced logout")
	}
	if !cleared {
		return
	}
	c.logger.Warn().Msg("session invalidated, forcing logout")
	if c.onSessionInvalidated != nil {
		c.onSessionInvalidated()
	}
}
