// Package session persists the bearer token across restarts. The token is
// the only durable client-side state; it lives in a single file mirroring
// the one storage key the backend contract requires.
package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Store holds the current bearer token and its on-disk location. An empty
// token means logged out. The token is treated as valid until the backend
// rejects it; there is no expiry or refresh logic.
type Store struct {
	path  string
	token string
}

// NewStore returns a store backed by the file at path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted token. A missing file means no session.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.token = ""
		return nil
	}
	if err != nil {
		return err
	}
	s.token = strings.TrimSpace(string(data))
	return nil
}

// Token returns the current token, or "" when logged out.
func (s *Store) Token() string {
	return s.token
}

// SetToken persists t and updates the in-memory state.
func (s *Store) SetToken(t string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(t), 0o600); err != nil {
		return err
	}
	s.token = t
	return nil
}

// Clear removes the persisted token and resets the in-memory state.
func (s *Store) Clear() error {
	s.token = ""
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
