// pkg/memcache/revoked_tokens.go
package mem

import (
	"context"
	"sync"
	"time"
)

// RevocationStore remembers access-token ids that were logged out until
// they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.data[jti] = s.now().Add(ttl)
	return nil
}

func (s *RevokedTokens) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.data[jti]
	if !ok {
		return false, nil
	}
	return s.now().Before(expiresAt), nil
}

// purgeLocked drops expired entries on write so the map stays bounded.
func (s *RevokedTokens) purgeLocked() {
	now := s.now()
	for jti, expiresAt := range s.data {
		if !now.Before(expiresAt) {
			delete(s.data, jti)
		}
	}
}
