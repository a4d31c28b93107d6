package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
)

// Repository persists orders and their line items.
type Repository struct {
	conn *gorm.DB
}

// NewRepository builds an order repository over the given connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{conn: conn}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{conn: tx}
}

// Create inserts the order and its line items in one transaction.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByID loads an order with its line items.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.conn.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByPhone lists a customer's orders, newest first. An unknown phone
// number yields an empty slice.
func (r *Repository) FindByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var rows []models.Order
	err := r.conn.WithContext(ctx).
		Preload("Items").
		Where("phone_number = ?", phone).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
