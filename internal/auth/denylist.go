package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"halalshop-backend/internal/config"
)

// DenyList records caller addresses that failed authentication. It is
// consulted before credential checks on every request, so membership
// outranks valid credentials.
type DenyList interface {
	Add(ctx context.Context, addr string) error
	Contains(ctx context.Context, addr string) (bool, error)
}

// New builds the configured deny-list backend. TTLSeconds of 0 keeps
// entries for the process lifetime, the historical behavior.
func New(cfg config.DenyListConfig, rdb *redis.Client) (DenyList, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryDenyList(ttl), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis deny-list requires a redis address")
		}
		return NewRedisDenyList(rdb, ttl), nil
	default:
		return nil, fmt.Errorf("unknown deny-list backend %q", cfg.Backend)
	}
}

// MemoryDenyList is an in-process set guarded by a mutex. With ttl 0 it
// never evicts, so sustained abuse grows it without bound; that is the
// documented trade-off, not an oversight.
type MemoryDenyList struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	ttl     time.Duration
}

func NewMemoryDenyList(ttl time.Duration) *MemoryDenyList {
	return &MemoryDenyList{
		entries: make(map[string]time.Time),
		ttl:     ttl,
	}
}

func (l *MemoryDenyList) Add(_ context.Context, addr string) error {
	l.mu.Lock()
	l.entries[addr] = time.Now()
	l.mu.Unlock()
	return nil
}

func (l *MemoryDenyList) Contains(_ context.Context, addr string) (bool, error) {
	l.mu.RLock()
	added, ok := l.entries[addr]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if l.ttl > 0 && time.Since(added) > l.ttl {
		l.mu.Lock()
		// Re-check under the write lock; a concurrent Add wins.
		if current, still := l.entries[addr]; still && time.Since(current) > l.ttl {
			delete(l.entries, addr)
		}
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}

const redisDenyKeyPrefix = "halalshop:denylist:"

// RedisDenyList shares bans across instances. Eviction rides on key
// expiry; ttl 0 keeps entries until flushed.
type RedisDenyList struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDenyList(rdb *redis.Client, ttl time.Duration) *RedisDenyList {
	return &RedisDenyList{rdb: rdb, ttl: ttl}
}

func (l *RedisDenyList) Add(ctx context.Context, addr string) error {
	return l.rdb.Set(ctx, redisDenyKeyPrefix+addr, "1", l.ttl).Err()
}

func (l *RedisDenyList) Contains(ctx context.Context, addr string) (bool, error) {
	n, err := l.rdb.Exists(ctx, redisDenyKeyPrefix+addr).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
