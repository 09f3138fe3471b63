// Package session holds the client's credential state: one access/refresh
// token pair, owned by the composition root and injected into the API client.
package session

import "sync"

// Store is the credential store consulted before every request.
// Implementations must be safe for concurrent use: independent requests may
// read tokens while a refresh overwrites the access token.
type Store interface {
	// Tokens returns the current access and refresh tokens.
	// Empty strings mean the session is anonymous.
	Tokens() (access, refresh string)
	// SetPair overwrites both tokens at once. Either both tokens are
	// stored or, on error, the previous pair is left untouched.
	SetPair(access, refresh string) error
	// SetAccess replaces only the access token, keeping the refresh token.
	SetAccess(access string) error
	// Clear removes both tokens, returning the session to anonymous.
	Clear() error
}

// MemoryStore keeps the token pair in memory. It is the store of choice for
// tests and for short-lived runs that should not persist credentials.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Tokens returns the current token pair.
func (s *MemoryStore) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

// SetPair overwrites both tokens.
func (s *MemoryStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

// SetAccess replaces only the access token.
func (s *MemoryStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

// Clear removes both tokens.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
