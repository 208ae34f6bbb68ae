package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers revoked session ids until their tokens expire.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func revokedKey(jti string) string {
	return "gogols:session:revoked:" + jti
}

func (rs *RedisSessionStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := rs.client.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (rs *RedisSessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := rs.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// MemorySessionStore is the single-process store used when Redis is not configured.
type MemorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{revoked: map[string]time.Time{}, now: time.Now}
}

func (ms *MemorySessionStore) Revoke(_ context.Context, jti string, until time.Time) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	now := ms.now()
	for id, exp := range ms.revoked {
		if !exp.After(now) {
			delete(ms.revoked, id)
		}
	}
	if until.After(now) {
		ms.revoked[jti] = until
	}
	return nil
}

func (ms *MemorySessionStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	exp, ok := ms.revoked[jti]
	return ok && exp.After(ms.now()), nil
}
