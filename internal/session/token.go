package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore persists the session's single opaque token string.
//
// Implementations must treat a missing token as ("", nil), not an error.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore is an in-memory TokenStore, used in tests and as a fallback
// when no database is configured.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// TokenExpiry reads the expiration claim from a backend-issued JWT without
// verifying its signature. The token is otherwise opaque to the client and
// validation authority stays with the backend's /me endpoint.
//
// Returns false when the token is not a parseable JWT or carries no exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
