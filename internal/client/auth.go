package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
)

// Login authenticates with the service and establishes a session: the
// returned token pair is stored atomically (both tokens or neither), then
// the identity is fetched for the caller.
//
// A 400 or 401 response maps to ErrInvalidCredentials so the caller can show
// a precise message; every other failure keeps its own kind. Login itself
// never enters the refresh path.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	payload, err := json.Marshal(dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	status, body, err := c.roundTrip(ctx, http.MethodPost, loginPath, payload, false)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		apiErr := newAPIError(status, body)
		apiErr.kind = ErrInvalidCredentials
		return nil, apiErr
	}
	if status < 200 || status >= 300 {
		return nil, newAPIError(status, body)
	}

	var pair dto.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("login response missing tokens")
	}

	// Store both tokens in one step so a partial pair can never exist.
	if err := c.store.SetPair(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("username", user.Username).Str("role", string(user.Role)).Msg("logged in")
	return user, nil
}

// CurrentUser fetches the identity behind the stored access token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, userPath, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the stored credentials. It is purely local; the service is
// not called.
func (c *Client) Logout() error {
	return c.store.Clear()
}
