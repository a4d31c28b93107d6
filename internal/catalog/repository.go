package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/pagination"
)

// Repository exposes product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single product row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// listParams configures the keyset listing query.
type listParams struct {
	Category *enums.ProductCategory
	Limit    int
	Cursor   *pagination.Cursor
}

// List returns products newest-first plus the cursor for the next page when
// more rows remain.
func (r *Repository) List(ctx context.Context, params listParams) ([]models.Product, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = pagination.LimitWithBuffer(0)
	}

	var rows []models.Product
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) < limit {
		return rows, nil, nil
	}

	rows = rows[:limit-1]
	last := rows[len(rows)-1]
	return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
}

// Upsert inserts the product or replaces an existing row with the same id.
// Used by the seeder.
func (r *Repository) Upsert(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(product).Error
}
