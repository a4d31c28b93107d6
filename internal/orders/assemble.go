// Package orders turns a checkout into a persisted order and tracks its
// lifecycle. Assembly is pure; persistence and notification live in the
// service.
package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/money"
)

// OrderForm is the validated customer input collected at checkout.
type OrderForm struct {
	CustomerName string
	PhoneNumber  string
	Address      string
	Note         *string
}

// AssembleFromCart builds a pending order from the full cart. Line prices are
// copied from the cart lines; the order total is the sum of line totals.
func AssembleFromCart(form OrderForm, items []cart.LineItem, at time.Time) *models.Order {
	order := &models.Order{
		ID:           newOrderID(at),
		CustomerName: form.CustomerName,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		Note:         form.Note,
		Status:       enums.OrderStatusPending,
		CreatedAt:    at,
	}

	totals := make([]int64, 0, len(items))
	for _, item := range items {
		line := lineFrom(order.ID, item)
		order.Items = append(order.Items, line)
		totals = append(totals, line.TotalPrice)
	}
	order.TotalPrice = money.Sum(totals...)
	return order
}

// AssembleDirect builds a pending order for a single "buy now" item without
// touching the cart.
func AssembleDirect(form OrderForm, item cart.LineItem, at time.Time) *models.Order {
	return AssembleFromCart(form, []cart.LineItem{item}, at)
}

func lineFrom(orderID string, item cart.LineItem) models.OrderLineItem {
	return models.OrderLineItem{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		Quantity:        item.Quantity,
		Price:           item.Price,
		TotalPrice:      money.MulQty(item.Price, item.Quantity),
		SelectedType:    item.SelectedType,
		SelectedWeight:  item.SelectedWeight,
		SelectedVolume:  item.SelectedVolume,
		SelectedPackage: item.SelectedPackage,
	}
}

// newOrderID derives the order id from the submission time, millisecond
// precision, with a random suffix so concurrent checkouts in the same
// millisecond never collide on the primary key.
func newOrderID(at time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}
