// Package dto defines Data Transfer Objects for the clinic REST API.
//
// DTOs decouple the client and the stub server from the domain model,
// carrying the exact wire shapes the remote service exposes.
package dto

// LoginRequest represents the JSON request body for POST /auth/login/.
type LoginRequest struct {
	// Username is the staff account name.
	Username string `json:"username" binding:"required"`
	// Password is the account password.
	Password string `json:"password" binding:"required"`
}

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// TokenPair is the response body of POST /auth/login/.
// Both tokens are opaque to the client; only the server interprets them.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest represents the JSON request body for POST /auth/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshResponse is the response body of POST /auth/token/refresh/.
// Only the access token is rotated; the refresh token stays valid.
type RefreshResponse struct {
	Access string `json:"access"`
}
