package cart

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/minhvuongle/yenvang-backend/internal/session"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/metrics"
)

type fakeKV struct {
	mu      sync.Mutex
	values  map[string]string
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("connection refused")
	}
	f.values[key] = value
	return nil
}

func (f *fakeKV) Fetch(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func testManager(t *testing.T, kv session.KV) *Manager {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	store := session.NewStore[[]LineItem](kv, 24*time.Hour, logg)
	mgr, err := NewManager(store, func(sessionID string) string {
		return "yv:cart:" + sessionID
	}, 24*time.Hour, logg, metrics.NewStorefrontMetrics(nil))
	require.NoError(t, err)
	return mgr
}

func TestManagerRoundTrip(t *testing.T) {
	kv := newFakeKV()
	mgr := testManager(t, kv)
	ctx := context.Background()

	item := lineItem(uuid.New(), 2, 25000)
	updated := mgr.AddItem(ctx, "sess-1", item)
	require.Equal(t, 2, updated.TotalItems())
	mgr.Flush()

	// a second manager over the same backend sees the persisted snapshot,
	// as after a process restart
	reloaded := testManager(t, kv).Get(ctx, "sess-1")
	require.Len(t, reloaded.Items, 1)
	require.Equal(t, int64(50000), reloaded.TotalPrice())
}

func TestManagerIdleCartExpiresInMemory(t *testing.T) {
	kv := newFakeKV()
	mgr := testManager(t, kv)
	ctx := context.Background()

	start := time.Now()
	mgr.now = func() time.Time { return start }
	mgr.AddItem(ctx, "sess-1", lineItem(uuid.New(), 1, 10000))
	mgr.Flush()

	// wipe the backend: inside the TTL the live copy alone serves reads
	kv.mu.Lock()
	kv.values = map[string]string{}
	kv.mu.Unlock()

	mgr.now = func() time.Time { return start.Add(23 * time.Hour) }
	require.Len(t, mgr.Get(ctx, "sess-1").Items, 1)

	// past the TTL the live copy is dropped and nothing is left to reload
	mgr.now = func() time.Time { return start.Add(25 * time.Hour) }
	require.Empty(t, mgr.Get(ctx, "sess-1").Items)
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	mgr := testManager(t, newFakeKV())
	ctx := context.Background()

	mgr.AddItem(ctx, "sess-a", lineItem(uuid.New(), 1, 10000))
	mgr.Flush()

	require.Empty(t, mgr.Get(ctx, "sess-b").Items)
	require.Len(t, mgr.Get(ctx, "sess-a").Items, 1)
}

func TestManagerMutations(t *testing.T) {
	mgr := testManager(t, newFakeKV())
	ctx := context.Background()

	item := lineItem(uuid.New(), 1, 40000)
	mgr.AddItem(ctx, "sess-1", item)

	updated := mgr.UpdateQuantity(ctx, "sess-1", item.ID, 3)
	require.Equal(t, 3, updated.Items[0].Quantity)

	updated = mgr.RemoveItem(ctx, "sess-1", item.ID)
	require.Empty(t, updated.Items)

	mgr.AddItem(ctx, "sess-1", lineItem(uuid.New(), 1, 10000))
	updated = mgr.Clear(ctx, "sess-1")
	require.Empty(t, updated.Items)
	mgr.Flush()
	require.Empty(t, mgr.Get(ctx, "sess-1").Items)
}

func TestManagerPersistFailureDoesNotSurface(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = true
	mgr := testManager(t, kv)

	updated := mgr.AddItem(context.Background(), "sess-1", lineItem(uuid.New(), 1, 10000))
	require.Len(t, updated.Items, 1)
	mgr.Flush()
}

func TestManagerConcurrentAddsMerge(t *testing.T) {
	mgr := testManager(t, newFakeKV())
	ctx := context.Background()
	productID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := lineItem(productID, 1, 25000)
			item.ID = ""
			mgr.AddItem(ctx, "sess-1", item)
		}()
	}
	wg.Wait()
	mgr.Flush()

	final := mgr.Get(ctx, "sess-1")
	require.Len(t, final.Items, 1)
	require.Equal(t, 10, final.Items[0].Quantity)
}
