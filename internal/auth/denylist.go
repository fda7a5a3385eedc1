package auth

import (
	"context"
	"sync"
	"time"
)

// TokenDenylist records revoked token ids until the token would have
// expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryDenylist is the single-process fallback, also used in tests.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (m *MemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (m *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}
