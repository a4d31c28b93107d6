package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minhvuongle/yenvang-backend/internal/session"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/metrics"
)

const persistTimeout = 5 * time.Second

// KeyFunc maps a session id to the storage key for its cart snapshot.
type KeyFunc func(sessionID string) string

type sessionEntry struct {
	mu        sync.Mutex
	cart      *Cart
	expiresAt time.Time
}

// Manager binds carts to sessions. The in-memory cart is authoritative while
// a session is live; the expiring store is the durability layer, loaded on
// first touch and rewritten asynchronously after every mutation so a slow or
// broken store never blocks the caller.
type Manager struct {
	store   *session.Store[[]LineItem]
	keyFor  KeyFunc
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	persistWait sync.WaitGroup
}

// NewManager builds a cart manager over the given snapshot store. ttl bounds
// how long an idle in-memory cart stays live, matching the store's own TTL.
func NewManager(store *session.Store[[]LineItem], keyFor KeyFunc, ttl time.Duration, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if keyFor == nil {
		return nil, fmt.Errorf("key func required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		store:    store,
		keyFor:   keyFor,
		ttl:      ttl,
		logg:     logg,
		metrics:  m,
		now:      time.Now,
		sessions: map[string]*sessionEntry{},
	}, nil
}

// Get returns the current cart for the session. A missing or expired snapshot
// is an empty cart.
func (m *Manager) Get(ctx context.Context, sessionID string) Cart {
	entry := m.entry(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshotOf(m.current(ctx, sessionID, entry))
}

// AddItem merges the item into the session's cart and returns the updated
// cart.
func (m *Manager) AddItem(ctx context.Context, sessionID string, item LineItem) Cart {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(item)
	})
}

// RemoveItem drops a line from the session's cart.
func (m *Manager) RemoveItem(ctx context.Context, sessionID, itemID string) Cart {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.RemoveItem(itemID)
	})
}

// UpdateQuantity changes a line's quantity.
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) Cart {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.UpdateQuantity(itemID, quantity)
	})
}

// Clear empties the session's cart.
func (m *Manager) Clear(ctx context.Context, sessionID string) Cart {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.Clear()
	})
}

func (m *Manager) mutate(ctx context.Context, sessionID string, apply func(*Cart)) Cart {
	entry := m.entry(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	current := m.current(ctx, sessionID, entry)
	apply(current)
	entry.expiresAt = m.now().Add(m.ttl)
	m.persistAsync(sessionID, current.Items)
	return snapshotOf(current)
}

// current returns the entry's live cart, loading it from the store on first
// touch or after the in-memory copy has expired.
func (m *Manager) current(ctx context.Context, sessionID string, entry *sessionEntry) *Cart {
	if entry.cart != nil && m.now().Before(entry.expiresAt) {
		return entry.cart
	}

	loaded := Cart{}
	if items, ok := m.store.Get(ctx, m.keyFor(sessionID)); ok {
		loaded.Items = items
	}
	entry.cart = &loaded
	entry.expiresAt = m.now().Add(m.ttl)
	return entry.cart
}

// persistAsync writes the snapshot in the background. Failures are logged and
// counted; the mutation that triggered the write has already succeeded from
// the caller's point of view.
func (m *Manager) persistAsync(sessionID string, items []LineItem) {
	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)

	logCtx := m.logg.WithSessionID(context.Background(), sessionID)
	m.persistWait.Add(1)
	go func() {
		defer m.persistWait.Done()
		writeCtx, cancel := context.WithTimeout(logCtx, persistTimeout)
		defer cancel()
		if err := m.store.Set(writeCtx, m.keyFor(sessionID), snapshot); err != nil {
			m.logg.Error(writeCtx, "cart snapshot persist failed", err)
			m.metrics.IncCartPersistFailure()
		}
	}()
}

// Flush blocks until all pending snapshot writes finish. Used on shutdown and
// in tests.
func (m *Manager) Flush() {
	m.persistWait.Wait()
}

func (m *Manager) entry(sessionID string) *sessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{}
		m.sessions[sessionID] = entry
	}
	return entry
}

func snapshotOf(c *Cart) Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
