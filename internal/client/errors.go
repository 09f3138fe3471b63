// Package client implements the authenticated HTTP client for the clinic
// REST service: bearer-token attachment, a guarded single refresh-and-retry
// on 401 and a uniform typed error for every failure.
package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guttosm/clinic-client/internal/domain/dto"
)

var (
	// ErrInvalidCredentials is returned when a login is rejected with 400 or 401.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionExpired is returned when a 401 could not be recovered by the
	// guarded refresh. The credential store has been cleared by then.
	ErrSessionExpired = errors.New("session expired")
	// ErrTransport is returned when no response was received at all.
	ErrTransport = errors.New("network error")
)

// Error is the uniform failure type surfaced by every client operation.
// Status is 0 when no response was received. Kind classification is done
// through errors.Is against the package sentinels.
type Error struct {
	// Status is the HTTP status code of the response, 0 for transport failures.
	Status int
	// Code is the machine-readable error code, derived from the status.
	Code string
	// Message is the server-supplied message when present, generic otherwise.
	Message string
	// Payload carries the raw error body for callers that need details.
	Payload json.RawMessage

	kind error
}

// Error returns a human-readable description of the failure.
func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Unwrap exposes the error kind so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.kind
}

// errorBody is the subset of fields the service may use for error messages.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Err     string `json:"error"`
}

// newAPIError maps a non-2xx response to an *Error, preferring the
// server-supplied message over the generic one.
func newAPIError(status int, body []byte) *Error {
	message := "an error occurred"
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			switch {
			case eb.Message != "":
				message = eb.Message
			case eb.Detail != "":
				message = eb.Detail
			case eb.Err != "":
				message = eb.Err
			}
		}
	}

	return &Error{
		Status:  status,
		Code:    dto.ErrCodeFromStatus(status),
		Message: message,
		Payload: append(json.RawMessage(nil), body...),
	}
}

// newTransportError wraps a failure where no response was received.
func newTransportError(cause error) *Error {
	return &Error{
		Message: fmt.Sprintf("network error: %v", cause),
		kind:    ErrTransport,
	}
}
