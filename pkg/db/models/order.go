package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/pkg/enums"
)

// Order is a persisted customer order assembled from the cart at checkout.
type Order struct {
	ID           string            `gorm:"column:id;primaryKey"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	PhoneNumber  string            `gorm:"column:phone_number;not null;index"`
	Address      string            `gorm:"column:address;not null"`
	Note         *string           `gorm:"column:note"`
	TotalPrice   int64             `gorm:"column:total_price;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Items        []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem snapshots one cart line at the moment the order was placed.
// Prices are copied, not referenced: later catalog edits must not rewrite
// history.
type OrderLineItem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID         string    `gorm:"column:order_id;not null;index"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName     string    `gorm:"column:product_name;not null"`
	Quantity        int       `gorm:"column:quantity;not null"`
	Price           int64     `gorm:"column:price;not null"`
	TotalPrice      int64     `gorm:"column:total_price;not null"`
	SelectedType    *string   `gorm:"column:selected_type"`
	SelectedWeight  *string   `gorm:"column:selected_weight"`
	SelectedVolume  *string   `gorm:"column:selected_volume"`
	SelectedPackage *int      `gorm:"column:selected_package"`
}
