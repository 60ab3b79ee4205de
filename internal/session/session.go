// Package session holds the desk's authentication state: an opaque bearer
// token and the signed-in user's profile.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// User is the profile returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is safe for concurrent use. The zero value is an empty session.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
}

// New returns a session already holding token and user.
func New(token string, user *User) *Session {
	s := &Session{}
	s.Set(token, user)
	return s
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the profile, or nil when nobody is signed in.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both a token and a profile are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Session) Set(token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

// Clear forgets the token and the profile.
func (s *Session) Clear() {
	s.Set("", nil)
}

type fileState struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// FileStore persists a session as JSON between desk runs.
type FileStore struct {
	Path string
}

// Load reads the stored session. A missing file yields an empty session.
func (f FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", f.Path, err)
	}
	return New(st.Token, st.User), nil
}

// Save writes s with owner-only permissions.
func (f FileStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(fileState{Token: s.Token(), User: s.User()}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Removing an absent file is not an error.
func (f FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
