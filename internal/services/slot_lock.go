package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultSlotLockTTL = 10 * time.Second

// SlotLocker serialises writers of one salt cave slot.
type SlotLocker interface {
	// Acquire returns ok=false when another writer holds the slot.
	Acquire(ctx context.Context, date, slot string) (release func(), ok bool, err error)
}

// RedisSlotLocker takes a SET NX lock per (date, slot), shared by every API instance.
type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) *RedisSlotLocker {
	if ttl <= 0 {
		ttl = DefaultSlotLockTTL
	}
	return &RedisSlotLocker{client: client, ttl: ttl}
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func slotLockKey(date, slot string) string {
	return fmt.Sprintf("gogols:slot-lock:%s:%s", date, slot)
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, date, slot string) (func(), bool, error) {
	key := slotLockKey(date, slot)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock slot %s %s: %w", date, slot, err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, true, nil
}

// LocalSlotLocker is the single-process fallback used without Redis.
type LocalSlotLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{held: map[string]struct{}{}}
}

func (l *LocalSlotLocker) Acquire(_ context.Context, date, slot string) (func(), bool, error) {
	key := slotLockKey(date, slot)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[key]; taken {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true, nil
}
