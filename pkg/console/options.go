package console

import (
	"log/slog"
	"net/http"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
)

// Options configures the console client.
type Options struct {
	// HTTPClient is the underlying HTTP client (optional, a default client
	// with a request timeout is used if not provided).
	HTTPClient *http.Client

	// SessionStore holds the authentication state (optional, an in-memory
	// store is used if not provided).
	SessionStore session.Store

	// Logger receives wire-level debug output (optional, slog.Default if
	// not provided).
	Logger *slog.Logger

	// UserAgent overrides the User-Agent header (optional).
	UserAgent string
}

// Option is a functional option for configuring the console client.
type Option func(*Options)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = c
	}
}

// WithSessionStore sets the session store.
func WithSessionStore(store session.Store) Option {
	return func(o *Options) {
		o.SessionStore = store
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.UserAgent = ua
	}
}
