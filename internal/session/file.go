package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys, kept identical to the browser client's localStorage keys.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// FileStore persists the token pair to a JSON file so that a login survives
// process restarts. Reads and writes are synchronous; the file is created
// with owner-only permissions.
type FileStore struct {
	mu     sync.Mutex
	path   string
	tokens map[string]string
}

// NewFileStore opens (or initializes) the credential file at path.
// A missing file is not an error: the store starts anonymous.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		tokens: map[string]string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}
	if err := json.Unmarshal(data, &s.tokens); err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	return s, nil
}

// Tokens returns the current token pair.
func (s *FileStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[accessTokenKey], s.tokens[refreshTokenKey]
}

// SetPair overwrites both tokens and persists them. On a write failure the
// in-memory state is rolled back so the previous pair stays effective.
func (s *FileStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevAccess, prevRefresh := s.tokens[accessTokenKey], s.tokens[refreshTokenKey]
	s.tokens[accessTokenKey] = access
	s.tokens[refreshTokenKey] = refresh
	if err := s.persist(); err != nil {
		s.tokens[accessTokenKey] = prevAccess
		s.tokens[refreshTokenKey] = prevRefresh
		return err
	}
	return nil
}

// SetAccess replaces only the access token and persists the change.
func (s *FileStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.tokens[accessTokenKey]
	s.tokens[accessTokenKey] = access
	if err := s.persist(); err != nil {
		s.tokens[accessTokenKey] = prev
		return err
	}
	return nil
}

// Clear removes both tokens and deletes the credential file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = map[string]string{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

// persist writes the token map to disk. Callers must hold the lock.
func (s *FileStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	data, err := json.Marshal(s.tokens)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}
