// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"scoreboard/internal/domain"

	"golang.org/x/crypto/blake2b"
)

// SessionService issues and checks per-address session tokens.
type SessionService struct {
	registry domain.SessionRegistry
	newToken func() (string, error)
}

// NewSessionService creates a SessionService backed by the given registry.
func NewSessionService(registry domain.SessionRegistry) *SessionService {
	return &SessionService{registry: registry, newToken: generateToken}
}

// CreateOrRefresh issues a fresh token for address, replacing any token it
// held before.
func (s *SessionService) CreateOrRefresh(ctx context.Context, address string) (string, error) {
	token, err := s.newToken()
	if err != nil {
		return "", err
	}
	if err := s.registry.Put(ctx, address, token); err != nil {
		return "", domain.WrapStorage("put session", err)
	}
	return token, nil
}

// HasSession reports whether address holds any session at all.
func (s *SessionService) HasSession(ctx context.Context, address string) (bool, error) {
	_, ok, err := s.registry.Token(ctx, address)
	if err != nil {
		return false, domain.WrapStorage("get session", err)
	}
	return ok, nil
}

// IsAuthorized reports whether token is exactly the token stored for address.
func (s *SessionService) IsAuthorized(ctx context.Context, address, token string) (bool, error) {
	stored, ok, err := s.registry.Token(ctx, address)
	if err != nil {
		return false, domain.WrapStorage("get session", err)
	}
	if !ok {
		return false, nil
	}
	return ConstantTimeCompare(stored, token), nil
}

// OnlineCount returns the number of addresses that hold a session.
func (s *SessionService) OnlineCount(ctx context.Context) (int, error) {
	n, err := s.registry.Count(ctx)
	if err != nil {
		return 0, domain.WrapStorage("count sessions", err)
	}
	return n, nil
}

// generateToken hashes 32 random bytes with BLAKE2b-256 and returns the
// digest as 64 hex characters.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
