package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/domain/model"
	"github.com/guttosm/clinic-client/internal/session"
)

// newTestStore returns a store pre-loaded with a token pair.
func newTestStore(t *testing.T, access, refresh string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.SetPair(access, refresh))
	return store
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	store := newTestStore(t, "the-access-token", "the-refresh-token")

	var gotAuth, gotRequestID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		writeJSON(t, w, http.StatusOK, []model.Service{})
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	_, err := c.Services.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer the-access-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_NoBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []model.Service{})
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemoryStore())
	_, err := c.Services.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// TestClient_RefreshAndRetryOn401 covers the recovery path: an expired
// access token triggers exactly one refresh and one retry, and the retried
// request carries the new access token.
func TestClient_RefreshAndRetryOn401(t *testing.T) {
	store := newTestStore(t, "expired-access", "valid-refresh")

	var refreshCalls, dataCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token/refresh/":
			refreshCalls.Add(1)
			var req dto.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "valid-refresh", req.Refresh)
			assert.Empty(t, r.Header.Get("Authorization"), "refresh must not carry the bearer token")
			writeJSON(t, w, http.StatusOK, dto.RefreshResponse{Access: "fresh-access"})
		case "/services/":
			dataCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer fresh-access" {
				writeJSON(t, w, http.StatusUnauthorized, dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired"))
				return
			}
			writeJSON(t, w, http.StatusOK, []model.Service{{ID: 1, Name: "General Consultation", Price: 500}})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	services, err := c.Services.List(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "General Consultation", services[0].Name)

	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh")
	assert.Equal(t, int32(2), dataCalls.Load(), "original request plus one retry")

	access, refresh := store.Tokens()
	assert.Equal(t, "fresh-access", access)
	assert.Equal(t, "valid-refresh", refresh, "refresh token survives the rotation")
}

// TestClient_SecondUnauthorizedEndsSession verifies the retry guard: a 401
// on the retried request never triggers a second refresh. The session is
// torn down instead.
func TestClient_SecondUnauthorizedEndsSession(t *testing.T) {
	store := newTestStore(t, "expired-access", "valid-refresh")

	var refreshCalls, dataCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token/refresh/":
			refreshCalls.Add(1)
			writeJSON(t, w, http.StatusOK, dto.RefreshResponse{Access: "fresh-access"})
		default:
			dataCalls.Add(1)
			writeJSON(t, w, http.StatusUnauthorized, dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	_, err := c.Services.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)

	assert.Equal(t, int32(1), refreshCalls.Load(), "never refresh twice for one request")
	assert.Equal(t, int32(2), dataCalls.Load())

	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

// TestClient_RefreshFailureEndsSession verifies that a rejected refresh
// clears both tokens and surfaces ErrSessionExpired.
func TestClient_RefreshFailureEndsSession(t *testing.T) {
	store := newTestStore(t, "expired-access", "stale-refresh")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token/refresh/" {
			writeJSON(t, w, http.StatusUnauthorized, dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired"))
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired"))
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	_, err := c.Services.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)

	access, refresh := store.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

// TestClient_NoRefreshTokenMeansNoRetry verifies that a 401 without a
// stored refresh token surfaces directly, with no refresh attempt.
func TestClient_NoRefreshTokenMeansNoRetry(t *testing.T) {
	store := newTestStore(t, "some-access", "")

	var dataCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token/refresh/" {
			t.Error("refresh must not be called without a refresh token")
		}
		dataCalls.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, dto.NewError(dto.ErrCodeUnauthorized, "token is invalid or expired"))
	}))
	defer srv.Close()

	c := New(srv.URL, store)
	_, err := c.Services.List(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), dataCalls.Load())
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, session.NewMemoryStore())
	_, err := c.Services.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Contains(t, apiErr.Message, "network error")
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "message field preferred",
			status:   http.StatusBadRequest,
			body:     `{"message":"patient is required","detail":"ignored","error":"ignored"}`,
			expected: "patient is required",
		},
		{
			name:     "detail field as fallback",
			status:   http.StatusUnauthorized,
			body:     `{"detail":"no active account found with the given credentials"}`,
			expected: "no active account found with the given credentials",
		},
		{
			name:     "error field as last resort",
			status:   http.StatusConflict,
			body:     `{"error":"duplicate bill"}`,
			expected: "duplicate bill",
		},
		{
			name:     "generic message when body is not JSON",
			status:   http.StatusInternalServerError,
			body:     `<html>boom</html>`,
			expected: "an error occurred",
		},
		{
			name:     "generic message when body is empty",
			status:   http.StatusBadGateway,
			body:     "",
			expected: "an error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, session.NewMemoryStore())
			_, err := c.Services.List(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.expected, apiErr.Message)
			assert.Equal(t, dto.ErrCodeFromStatus(tt.status), apiErr.Code)
		})
	}
}

func TestClient_ListEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bare array", body: `[{"id":1,"name":"Meera Sharma"},{"id":2,"name":"Arjun Patel"}]`},
		{name: "results envelope", body: `{"results":[{"id":1,"name":"Meera Sharma"},{"id":2,"name":"Arjun Patel"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, session.NewMemoryStore())
			patients, err := c.Patients.List(context.Background())
			require.NoError(t, err)
			require.Len(t, patients, 2)
			assert.Equal(t, "Meera Sharma", patients[0].Name)
			assert.Equal(t, "Arjun Patel", patients[1].Name)
		})
	}
}

func TestClient_Download(t *testing.T) {
	content := []byte("Bill CLN-20240101-0001\nGrand total: 1170.00\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bills/7/download/", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemoryStore())
	body, err := c.Bills.Download(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestError_Unwrap(t *testing.T) {
	err := newTransportError(errors.New("dial tcp: connection refused"))
	assert.ErrorIs(t, err, ErrTransport)

	plain := newAPIError(http.StatusNotFound, []byte(`{"message":"bill not found"}`))
	assert.NotErrorIs(t, plain, ErrTransport)
	assert.NotErrorIs(t, plain, ErrSessionExpired)
	assert.Equal(t, "bill not found (status 404)", plain.Error())
}
