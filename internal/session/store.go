// Package session persists per-session state under an absolute expiry.
// Values are wrapped in an envelope carrying their expiry timestamp; expiry
// is enforced lazily on read, with the backend's own TTL as a safety net.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

// KV is the backend surface the store needs. pkg/redis.Client satisfies it.
type KV interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Fetch(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, keys ...string) error
}

type envelope[T any] struct {
	Value  T     `json:"value"`
	Expiry int64 `json:"expiry"` // unix milliseconds
}

// Store wraps a KV backend with a fixed TTL for values of one type.
type Store[T any] struct {
	kv   KV
	ttl  time.Duration
	logg *logger.Logger
	now  func() time.Time
}

// NewStore builds a store with the given TTL.
func NewStore[T any](kv KV, ttl time.Duration, logg *logger.Logger) *Store[T] {
	return &Store[T]{kv: kv, ttl: ttl, logg: logg, now: time.Now}
}

// Set persists value under key, stamped to expire after the store's TTL.
func (s *Store[T]) Set(ctx context.Context, key string, value T) error {
	wrapped := envelope[T]{
		Value:  value,
		Expiry: s.now().Add(s.ttl).UnixMilli(),
	}
	raw, err := json.Marshal(wrapped)
	if err != nil {
		return err
	}
	// backend TTL is twice the envelope's: the envelope stays authoritative
	// while stale entries still get swept server-side eventually
	return s.kv.Set(ctx, key, string(raw), 2*s.ttl)
}

// Get returns the stored value. A missing, expired, or unreadable entry is a
// miss, never an error: expired entries are deleted on the way out.
func (s *Store[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, found, err := s.kv.Fetch(ctx, key)
	if err != nil {
		s.warn(ctx, key, "session store read failed", err)
		return zero, false
	}
	if !found {
		return zero, false
	}

	var wrapped envelope[T]
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		s.warn(ctx, key, "session store entry corrupt", err)
		return zero, false
	}

	if s.now().UnixMilli() > wrapped.Expiry {
		if err := s.kv.Del(ctx, key); err != nil {
			s.warn(ctx, key, "session store expiry cleanup failed", err)
		}
		return zero, false
	}

	return wrapped.Value, true
}

// Delete removes the entry for key.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	return s.kv.Del(ctx, key)
}

func (s *Store[T]) warn(ctx context.Context, key, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "key", key)
	s.logg.Error(ctx, msg, err)
}
