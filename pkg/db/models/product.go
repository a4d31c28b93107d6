package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/types"
)

// Product is a catalog row. Custom products carry their selectable
// dimensions inline; combo/unit products leave them empty and price at
// BasePrice.
type Product struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name           string                `gorm:"column:name;not null"`
	Description    string                `gorm:"column:description;not null;default:''"`
	Images         pq.StringArray        `gorm:"column:images;type:text[]"`
	BasePrice      int64                 `gorm:"column:base_price;not null"`
	Category       enums.ProductCategory `gorm:"column:category;not null"`
	Types          types.ProductTypes    `gorm:"column:types;type:jsonb;serializer:json"`
	VolumeOptions  pq.StringArray        `gorm:"column:volume_options;type:text[]"`
	PackageOptions types.PackageOptions  `gorm:"column:package_options;type:jsonb;serializer:json"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// IsCustom reports whether the product has selectable dimensions.
func (p *Product) IsCustom() bool {
	return p.Category == enums.ProductCategoryCustom
}
