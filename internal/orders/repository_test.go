package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  address TEXT NOT NULL,
  note TEXT,
  total_price INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price INTEGER NOT NULL,
  total_price INTEGER NOT NULL,
  selected_type TEXT,
  selected_weight TEXT,
  selected_volume TEXT,
  selected_package INTEGER
);`
	require.NoError(t, conn.Exec(orders).Error)
	require.NoError(t, conn.Exec(lineItems).Error)

	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	order := AssembleFromCart(testForm(), cartLines(), time.Now())
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.TotalPrice, found.TotalPrice)
	require.Len(t, found.Items, 2)

	_, err = repo.FindByID(ctx, "ORD-0")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByPhone(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	first := AssembleFromCart(testForm(), cartLines()[:1], time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC))
	second := AssembleFromCart(testForm(), cartLines()[:1], time.Date(2025, 8, 12, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	other := testForm()
	other.PhoneNumber = "0999999999"
	require.NoError(t, repo.Create(ctx, AssembleFromCart(other, cartLines()[:1], time.Date(2025, 8, 12, 11, 0, 0, 0, time.UTC))))

	rows, err := repo.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// newest first
	require.Equal(t, second.ID, rows[0].ID)
	require.Len(t, rows[0].Items, 1)

	rows, err = repo.FindByPhone(ctx, "0888888888")
	require.NoError(t, err)
	require.Empty(t, rows)
}
