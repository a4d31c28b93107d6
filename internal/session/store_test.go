package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if f.failSet {
		return errors.New("connection refused")
	}
	f.values[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Fetch(_ context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("connection refused")
	}
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type payload struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

func TestStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := NewStore[payload](kv, 24*time.Hour, nil)

	require.NoError(t, store.Set(context.Background(), "yv:cart:abc", payload{Count: 2, Label: "x"}))

	got, ok := store.Get(context.Background(), "yv:cart:abc")
	require.True(t, ok)
	require.Equal(t, payload{Count: 2, Label: "x"}, got)

	// backend TTL doubles the envelope TTL so the envelope stays authoritative
	require.Equal(t, 48*time.Hour, kv.ttls["yv:cart:abc"])
}

func TestStoreMissOnAbsent(t *testing.T) {
	store := NewStore[payload](newFakeKV(), time.Hour, nil)

	got, ok := store.Get(context.Background(), "yv:cart:nope")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestStoreExpiredEntryDeletedLazily(t *testing.T) {
	kv := newFakeKV()
	store := NewStore[payload](kv, 24*time.Hour, nil)

	now := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "yv:cart:abc", payload{Count: 1}))

	// one minute before expiry the entry is still live
	store.now = func() time.Time { return now.Add(24*time.Hour - time.Minute) }
	_, ok := store.Get(context.Background(), "yv:cart:abc")
	require.True(t, ok)

	// one minute past expiry it is a miss and gets removed from the backend
	store.now = func() time.Time { return now.Add(24*time.Hour + time.Minute) }
	_, ok = store.Get(context.Background(), "yv:cart:abc")
	require.False(t, ok)
	require.NotContains(t, kv.values, "yv:cart:abc")
}

func TestStoreCorruptEntryIsMiss(t *testing.T) {
	kv := newFakeKV()
	kv.values["yv:cart:abc"] = "{not json"
	store := NewStore[payload](kv, time.Hour, nil)

	_, ok := store.Get(context.Background(), "yv:cart:abc")
	require.False(t, ok)
}

func TestStoreBackendErrorsDegradeToMiss(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = true
	store := NewStore[payload](kv, time.Hour, nil)

	_, ok := store.Get(context.Background(), "yv:cart:abc")
	require.False(t, ok)

	kv.failSet = true
	require.Error(t, store.Set(context.Background(), "yv:cart:abc", payload{}))
}
