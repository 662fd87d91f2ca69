// Package throttle counts failed logins per email and locks an email out
// once it reaches the configured limit within the lockout window.
package throttle

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gymstack/gymcore/pkg/metrics"
)

// Store keeps fixed-window counters.
type Store interface {
	// Incr adds one to key, starting a window of length window when the key
	// is new, and returns the new count.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Count returns the current count of key, zero when absent or expired.
	Count(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// Limiter applies a Store to login attempts.
type Limiter struct {
	store   Store
	max     int64
	lockout time.Duration
}

// New returns a Limiter allowing max failures per lockout window.
func New(store Store, max int, lockout time.Duration) *Limiter {
	return &Limiter{store: store, max: int64(max), lockout: lockout}
}

func key(email string) string {
	return "login_failures:" + strings.ToLower(strings.TrimSpace(email))
}

// Locked reports whether email has used up its failed attempts.
func (l *Limiter) Locked(ctx context.Context, email string) (bool, error) {
	n, err := l.store.Count(ctx, key(email))
	if err != nil {
		return false, err
	}
	return n >= l.max, nil
}

// Fail records one failed attempt for email.
func (l *Limiter) Fail(ctx context.Context, email string) error {
	_, err := l.store.Incr(ctx, key(email), l.lockout)
	return err
}

// Clear forgets the failures of email after a successful login.
func (l *Limiter) Clear(ctx context.Context, email string) error {
	return l.store.Reset(ctx, key(email))
}

// RedisStore keeps counters in Redis so every replica shares them.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		metrics.ThrottleStore.WithLabelValues("redis", "error").Inc()
		return 0, err
	}
	metrics.ThrottleStore.WithLabelValues("redis", "ok").Inc()
	return incr.Val(), nil
}

func (s *RedisStore) Count(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.Get(ctx, key).Int64()
	switch {
	case err == redis.Nil:
		return 0, nil
	case err != nil:
		metrics.ThrottleStore.WithLabelValues("redis", "error").Inc()
		return 0, err
	}
	return n, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

type counter struct {
	n       int64
	expires time.Time
}

// MemoryStore is the single-process fallback used when Redis is unavailable.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]counter
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: map[string]counter{}, now: time.Now}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.counters[key]
	if !ok || !now.Before(c.expires) {
		c = counter{expires: now.Add(window)}
	}
	c.n++
	s.counters[key] = c
	metrics.ThrottleStore.WithLabelValues("memory", "ok").Inc()
	return c.n, nil
}

func (s *MemoryStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		return 0, nil
	}
	if !s.now().Before(c.expires) {
		delete(s.counters, key)
		return 0, nil
	}
	return c.n, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, key)
	return nil
}
