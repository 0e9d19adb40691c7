// Package auth provides the stubbed login session and the route guard that
// sit in front of the dashboard. The list view never depends on it.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/yiblet/dash/internal/store"
)

const (
	TokenKey = "session_token"
	UserKey  = "session_user"

	DefaultUser = "User"
)

// ErrNotLoggedIn is returned when an operation needs a session and none exists.
var ErrNotLoggedIn = errors.New("not logged in; run `dash login` first")

// Session stores the login token in the runtime config store.
type Session struct {
	config store.ConfigStore
}

// NewSession creates a session backed by config.
func NewSession(config store.ConfigStore) *Session {
	return &Session{config: config}
}

// Login issues a new random token for user. No credentials are checked.
func (s *Session) Login(user string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		user = DefaultUser
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.config.Set(TokenKey, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.config.Set(UserKey, user); err != nil {
		return "", fmt.Errorf("failed to store user: %w", err)
	}
	return token, nil
}

// Logout removes the token and user. Logging out without a session is not an error.
func (s *Session) Logout() error {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.config.Delete(key); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

// Token returns the current token, or "" when logged out.
func (s *Session) Token() (string, error) {
	return s.get(TokenKey)
}

// User returns the logged-in user name, falling back to DefaultUser.
func (s *Session) User() string {
	user, err := s.get(UserKey)
	if err != nil || user == "" {
		return DefaultUser
	}
	return user
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Require returns ErrNotLoggedIn when there is no session.
func (s *Session) Require() error {
	if !s.Authenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *Session) get(key string) (string, error) {
	value, err := s.config.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return value, err
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
