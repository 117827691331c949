// Package transport performs the console's HTTP requests: it resolves paths
// against a configured base URL, attaches the current bearer token when a
// session holds one, and reports unreachable-service failures as typed
// errors. Status interpretation stays with the callers; the transport hands
// back status and body as received.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/api"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

// Token returns f().
func (f TokenFunc) Token() string { return f() }

// Transport issues HTTP requests against the console API.
type Transport struct {
	base      *url.URL
	client    *http.Client
	tokens    TokenSource
	logger    *slog.Logger
	userAgent string
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// WithTokenSource sets the bearer token source, normally backed by the
// session store.
func WithTokenSource(ts TokenSource) Option {
	return func(t *Transport) {
		t.tokens = ts
	}
}

// WithLogger sets the logger for wire-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = l
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// New creates a Transport for the given base URL.
func New(baseURL string, opts ...Option) (*Transport, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	t := &Transport{
		base:   base,
		client: &http.Client{Timeout: defaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Body is an encoded request body with its content type.
type Body struct {
	ContentType string
	Reader      io.Reader
}

// JSONBody encodes v as a JSON request body.
func JSONBody(v any) (*Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return &Body{ContentType: "application/json", Reader: bytes.NewReader(data)}, nil
}

// Response is the raw outcome of a request: status and body as received.
type Response struct {
	Status int
	Body   []byte
}

// Success reports whether the status is 2xx.
func (r *Response) Success() bool {
	return r.Status >= 200 && r.Status < 300
}

// Err returns nil for a 2xx response, else the typed error for the status
// carrying the server-supplied message when the body holds one.
func (r *Response) Err() error {
	if r.Success() {
		return nil
	}
	return api.FromStatus(r.Status, api.ErrorMessage(r.Body))
}

// Request issues an HTTP request and returns the status and body as
// received. Only transport-level failures (unreachable service, canceled
// context, unreadable body) are errors here; non-2xx statuses are returned
// in the Response for the caller to interpret.
func (t *Transport) Request(ctx context.Context, method, path string, query url.Values, body *Body) (*Response, error) {
	u := t.base.JoinPath(strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = body.Reader
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil && body.ContentType != "" {
		req.Header.Set("Content-Type", body.ContentType)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return nil, api.Unavailable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.Unavailable(err)
	}

	t.logger.Debug("request completed",
		"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Ping checks service reachability via the health endpoint.
func (t *Transport) Ping(ctx context.Context) error {
	resp, err := t.Request(ctx, http.MethodGet, "health", nil, nil)
	if err != nil {
		return err
	}
	return resp.Err()
}
