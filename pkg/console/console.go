package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/auth"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/resource"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/transport"
)

// Resource endpoint paths.
const (
	userEndpoint     = "user"
	productEndpoint  = "product"
	categoryEndpoint = "category"
	deviceEndpoint   = "device"
)

const defaultUserAgent = "hmes-console-client"

// Console is the client for the administrative console API.
type Console struct {
	transport  *transport.Transport
	store      session.Store
	auth       *auth.Gateway
	users      *resource.Client[User]
	products   *resource.Client[Product]
	categories *resource.Client[Category]
	devices    *resource.Client[Device]
	closers    []io.Closer
}

// New creates a console client for the given base URL. Without a session
// store option the session lives in memory only and dies with the process.
func New(baseURL string, opts ...Option) (*Console, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	store := options.SessionStore
	if store == nil {
		store = session.NewMemoryStore()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	transportOpts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithUserAgent(userAgent),
		transport.WithTokenSource(transport.TokenFunc(func() string {
			return store.Current().Token
		})),
	}
	if options.HTTPClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(options.HTTPClient))
	}

	t, err := transport.New(baseURL, transportOpts...)
	if err != nil {
		return nil, err
	}

	c := &Console{
		transport: t,
		store:     store,
		auth:      auth.NewGateway(t, store, logger),
	}

	if c.users, err = resource.NewClient[User](t, userEndpoint); err != nil {
		return nil, err
	}
	if c.products, err = resource.NewClient[Product](t, productEndpoint); err != nil {
		return nil, err
	}
	if c.categories, err = resource.NewClient[Category](t, categoryEndpoint); err != nil {
		return nil, err
	}
	if c.devices, err = resource.NewClient[Device](t, deviceEndpoint); err != nil {
		return nil, err
	}
	return c, nil
}

// Auth returns the authentication gateway.
func (c *Console) Auth() *auth.Gateway {
	return c.auth
}

// Session returns the session store.
func (c *Console) Session() session.Store {
	return c.store
}

// Users returns the user resource adapter.
func (c *Console) Users() *resource.Client[User] {
	return c.users
}

// Products returns the product resource adapter.
func (c *Console) Products() *resource.Client[Product] {
	return c.products
}

// Categories returns the category resource adapter.
func (c *Console) Categories() *resource.Client[Category] {
	return c.categories
}

// Devices returns the device resource adapter.
func (c *Console) Devices() *resource.Client[Device] {
	return c.devices
}

// Ping checks service reachability.
func (c *Console) Ping(ctx context.Context) error {
	return c.transport.Ping(ctx)
}

// Close releases resources owned by the client, such as a Redis connection
// created from config. Clients built purely from options own nothing.
func (c *Console) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing console client: %w", err)
		}
	}
	return firstErr
}
