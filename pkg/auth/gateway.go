// Package auth orchestrates login and logout against the console API, with
// the session store as its backing state. Nothing here throws past the
// gateway boundary: every operation returns a typed error the UI layer can
// present, and the session is only ever replaced or cleared wholesale.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/api"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/transport"
)

// Fixed fallback messages, used when the server supplies none.
const (
	loginFallback  = "login failed"
	logoutFallback = "logout failed"
)

// Gateway owns the authentication flows.
type Gateway struct {
	transport *transport.Transport
	store     session.Store
	logger    *slog.Logger
}

// NewGateway creates a gateway over the given transport and session store.
func NewGateway(t *transport.Transport, store session.Store, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{transport: t, store: store, logger: logger}
}

// loginRequest is the POST auth/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the success body: profile fields plus a nested auth.token.
type loginResponse struct {
	session.User
	Auth struct {
		Token string `json:"token"`
	} `json:"auth"`
}

// Login authenticates against the remote service. On success the returned
// profile and token replace the stored session wholesale. On any failure the
// store is left untouched: a failed login never partially overwrites an
// existing valid session.
func (g *Gateway) Login(ctx context.Context, email, password string) (*session.User, error) {
	body, err := transport.JSONBody(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := g.transport.Request(ctx, http.MethodPost, "auth/login", nil, body)
	if err != nil {
		return nil, api.WithFallback(err, loginFallback)
	}
	if err := resp.Err(); err != nil {
		return nil, api.WithFallback(err, loginFallback)
	}

	var parsed loginResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, api.Malformed("login response is not valid JSON")
	}
	if parsed.Auth.Token == "" {
		return nil, api.Malformed("login response missing token")
	}

	user := parsed.User
	if err := g.store.Save(session.Session{Token: parsed.Auth.Token, User: &user}); err != nil {
		return nil, err
	}

	g.logger.Debug("login succeeded", "user", user.ID)
	return &user, nil
}

// Logout clears the local session unconditionally. The remote logout
// notification is best effort: its failure is logged and otherwise ignored,
// because logout is a client-local guarantee first.
func (g *Gateway) Logout(ctx context.Context) error {
	resp, err := g.transport.Request(ctx, http.MethodPost, "auth/logout", nil, nil)
	switch {
	case err != nil:
		g.logger.Debug("remote logout notification failed", "error", err)
	case !resp.Success():
		g.logger.Debug("remote logout notification rejected", "status", resp.Status)
	}

	return g.store.Clear()
}

// CurrentUser returns the cached profile without a network call. This is a
// cache, not a re-validation: a revoked-but-cached token still reports its
// user until the next request fails.
func (g *Gateway) CurrentUser() *session.User {
	return g.store.Current().User
}

// IsAuthenticated reports whether the current session holds a token.
func (g *Gateway) IsAuthenticated() bool {
	return g.store.Current().Authenticated()
}

// SignUp is not offered by this console build.
func (g *Gateway) SignUp(ctx context.Context, email, password, name string) error {
	return api.NotImplemented("sign-up")
}

// ResetPassword is not offered by this console build.
func (g *Gateway) ResetPassword(ctx context.Context, email string) error {
	return api.NotImplemented("password reset")
}

// LoginWithOAuth is not offered by this console build.
func (g *Gateway) LoginWithOAuth(ctx context.Context, provider string) error {
	return api.NotImplemented("oauth login")
}
