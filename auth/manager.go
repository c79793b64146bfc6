// Package auth resolves the tenant user for API requests. Identity itself
// lives with an external provider; this package only issues and validates
// opaque session tokens so the API can map a bearer token back to a user id.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"

	"trade-journal/cache"
)

// ErrInvalidSession is returned for unknown or expired tokens
var ErrInvalidSession = errors.New("invalid or expired session")

// ErrInvalidServiceKey is returned when session creation carries a bad key
var ErrInvalidServiceKey = errors.New("invalid service key")

// Manager issues and validates redis-backed session tokens
type Manager struct {
	redis      *cache.RedisClient
	serviceKey string
	ttl        time.Duration
	enabled    bool
}

// NewManager creates a session manager. When enabled is false the API skips
// token validation and trusts the X-User-ID header instead.
func NewManager(redis *cache.RedisClient, serviceKey string, ttl time.Duration, enabled bool) *Manager {
	return &Manager{
		redis:      redis,
		serviceKey: serviceKey,
		ttl:        ttl,
		enabled:    enabled,
	}
}

// Enabled reports whether token validation is active
func (m *Manager) Enabled() bool {
	return m.enabled
}

func sessionKey(token string) string {
	return "session:" + token
}

// VerifyServiceKey checks the shared key presented on session creation
func (m *Manager) VerifyServiceKey(key string) bool {
	if m.serviceKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.serviceKey)) == 1
}

// CreateSession issues a new opaque token for the given user
func (m *Manager) CreateSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := m.redis.SetString(ctx, sessionKey(token), userID, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token back to its user id
func (m *Manager) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	userID, err := m.redis.GetString(ctx, sessionKey(token))
	if err != nil {
		return "", ErrInvalidSession
	}
	return userID, nil
}

// Revoke drops a session token
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.redis.Delete(ctx, sessionKey(token))
}
