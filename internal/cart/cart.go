// Package cart aggregates a session's selected products into line items and
// keeps the aggregate persisted across requests.
package cart

import (
	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/money"
)

// LineItem is one cart row: a product snapshot plus the selection that
// produced its price. Selections are pointers so "not selected" stays
// distinct from an empty or zero selection.
type LineItem struct {
	ID              string                `json:"id"`
	ProductID       uuid.UUID             `json:"productId"`
	ProductName     string                `json:"productName"`
	ProductImage    *string               `json:"productImage,omitempty"`
	ProductCategory enums.ProductCategory `json:"productCategory"`
	Quantity        int                   `json:"quantity"`
	SelectedType    *string               `json:"selectedType,omitempty"`
	SelectedWeight  *string               `json:"selectedWeight,omitempty"`
	SelectedVolume  *string               `json:"selectedVolume,omitempty"`
	SelectedPackage *int                  `json:"selectedPackage,omitempty"`
	Price           int64                 `json:"price"`
	TotalPrice      int64                 `json:"totalPrice"`
}

// Cart is the ordered set of line items for one session. Totals are derived
// from the items on every read, never stored.
type Cart struct {
	Items []LineItem `json:"items"`
}

// sameSelection reports whether two items describe the same configuration of
// the same product. Every dimension compares null-aware: a nil selection only
// matches another nil, so package 0 and "no package" stay separate lines.
func sameSelection(a, b LineItem) bool {
	return a.ProductID == b.ProductID &&
		eqStrPtr(a.SelectedType, b.SelectedType) &&
		eqStrPtr(a.SelectedWeight, b.SelectedWeight) &&
		eqStrPtr(a.SelectedVolume, b.SelectedVolume) &&
		eqIntPtr(a.SelectedPackage, b.SelectedPackage)
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AddItem merges item into the cart. An existing line with the same product
// and selection absorbs the quantity and keeps its own price; otherwise the
// item is appended as a new line. Non-positive quantities are ignored.
func (c *Cart) AddItem(item LineItem) {
	if item.Quantity <= 0 {
		return
	}
	for i := range c.Items {
		if sameSelection(c.Items[i], item) {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].TotalPrice = money.MulQty(c.Items[i].Price, c.Items[i].Quantity)
			return
		}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.TotalPrice = money.MulQty(item.Price, item.Quantity)
	c.Items = append(c.Items, item)
}

// RemoveItem drops the line with the given id. Unknown ids are a no-op.
func (c *Cart) RemoveItem(itemID string) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line with the given id. Unknown ids
// and non-positive quantities are no-ops, so a decrement past zero leaves the
// line at its last valid quantity.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].TotalPrice = money.MulQty(c.Items[i].Price, quantity)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems is the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the summed line totals in VND.
func (c *Cart) TotalPrice() int64 {
	totals := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		totals = append(totals, item.TotalPrice)
	}
	return money.Sum(totals...)
}
