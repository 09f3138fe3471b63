package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/session"
)

const (
	loginPath   = "/auth/login/"
	refreshPath = "/auth/token/refresh/"
	userPath    = "/auth/user/"
)

// Client performs HTTP calls to the clinic service, transparently attaching
// credentials and recovering from exactly one class of failure: an expired
// access token. All other failures surface as *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store

	// Endpoint groups mirroring the service's API surface.
	Patients  PatientAPI
	Services  ServiceAPI
	Bills     BillAPI
	Dashboard DashboardAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the transport-level timeout for every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the service at baseURL, reading and writing
// credentials through the given store.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		store: store,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Patients = PatientAPI{c: c}
	c.Services = ServiceAPI{c: c}
	c.Bills = BillAPI{c: c}
	c.Dashboard = DashboardAPI{c: c}
	return c
}

// do issues an authenticated request and decodes the response into out.
// The retry budget starts at zero attempts used.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}
	return c.send(ctx, method, path, payload, out, 0)
}

// send performs one request/response cycle. attempt counts how many times
// this logical request has already been issued; the refresh path runs only
// on the first attempt, so a request is retried at most once.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any, attempt int) error {
	status, body, err := c.roundTrip(ctx, method, path, payload, true)
	if err != nil {
		return err
	}

	if status >= 200 && status < 300 {
		return decodeInto(body, out)
	}

	if status == http.StatusUnauthorized {
		_, refresh := c.store.Tokens()
		if refresh != "" && attempt == 0 {
			if err := c.refreshAccessToken(ctx, refresh); err != nil {
				// Refresh failed: the session is over. Tear it down so the
				// caller can route to the login flow.
				if clearErr := c.store.Clear(); clearErr != nil {
					log.Warn().Err(clearErr).Msg("failed to clear credentials after refresh failure")
				}
				apiErr := newAPIError(status, body)
				apiErr.kind = ErrSessionExpired
				return apiErr
			}
			log.Debug().Str("method", method).Str("path", path).Msg("access token refreshed, retrying request")
			return c.send(ctx, method, path, payload, out, attempt+1)
		}
		if attempt > 0 {
			// Second 401 after a successful refresh: do not refresh again.
			if clearErr := c.store.Clear(); clearErr != nil {
				log.Warn().Err(clearErr).Msg("failed to clear credentials after repeated 401")
			}
			apiErr := newAPIError(status, body)
			apiErr.kind = ErrSessionExpired
			return apiErr
		}
	}

	return newAPIError(status, body)
}

// roundTrip builds and executes a single HTTP request, returning the status
// and the full response body. withAuth controls bearer attachment; the auth
// endpoints themselves are called without it.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, withAuth bool) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if withAuth {
		if access, _ := c.store.Tokens(); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, newTransportError(err)
	}

	return resp.StatusCode, body, nil
}

// refreshAccessToken exchanges the refresh token for a new access token and
// stores it. It never recurses into the retry path.
func (c *Client) refreshAccessToken(ctx context.Context, refresh string) error {
	payload, err := json.Marshal(dto.RefreshRequest{Refresh: refresh})
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}

	status, body, err := c.roundTrip(ctx, http.MethodPost, refreshPath, payload, false)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return newAPIError(status, body)
	}

	var resp dto.RefreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if resp.Access == "" {
		return fmt.Errorf("refresh response missing access token")
	}

	return c.store.SetAccess(resp.Access)
}

// decodeInto unmarshals a response body, tolerating empty bodies and
// callers that do not care about the payload. A *[]byte target receives the
// raw body (used for file downloads).
func decodeInto(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// get is shorthand for an authenticated GET.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post is shorthand for an authenticated POST.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put is shorthand for an authenticated PUT.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// patch is shorthand for an authenticated PATCH.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// del is shorthand for an authenticated DELETE.
func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}
