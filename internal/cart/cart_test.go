package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func lineItem(productID uuid.UUID, qty int, price int64) LineItem {
	return LineItem{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: "Yến chưng tươi",
		Quantity:    qty,
		Price:       price,
	}
}

func TestAddItemMergesSameSelection(t *testing.T) {
	productID := uuid.New()
	c := &Cart{}

	first := lineItem(productID, 2, 25000)
	first.SelectedType = strPtr("type-duong-phen")
	first.SelectedWeight = strPtr("70ml")
	c.AddItem(first)

	second := lineItem(productID, 3, 30000)
	second.SelectedType = strPtr("type-duong-phen")
	second.SelectedWeight = strPtr("70ml")
	c.AddItem(second)

	require.Len(t, c.Items, 1)
	require.Equal(t, 5, c.Items[0].Quantity)
	// the line that was already in the cart keeps its price
	require.Equal(t, int64(25000), c.Items[0].Price)
	require.Equal(t, int64(125000), c.Items[0].TotalPrice)
	require.Equal(t, first.ID, c.Items[0].ID)
}

func TestAddItemDifferentSelectionIsNewLine(t *testing.T) {
	productID := uuid.New()
	c := &Cart{}

	base := lineItem(productID, 1, 25000)
	base.SelectedType = strPtr("type-duong-phen")
	c.AddItem(base)

	other := lineItem(productID, 1, 25000)
	other.SelectedType = strPtr("type-khong-duong")
	c.AddItem(other)

	require.Len(t, c.Items, 2)
}

func TestAddItemNilSelectionOnlyMatchesNil(t *testing.T) {
	productID := uuid.New()
	c := &Cart{}

	withPackage := lineItem(productID, 1, 50000)
	withPackage.SelectedPackage = intPtr(0)
	c.AddItem(withPackage)

	// package 0 is a real choice; "no package" must not merge into it
	noPackage := lineItem(productID, 1, 50000)
	c.AddItem(noPackage)

	require.Len(t, c.Items, 2)

	again := lineItem(productID, 2, 50000)
	c.AddItem(again)
	require.Len(t, c.Items, 2)
	require.Equal(t, 3, c.Items[1].Quantity)
}

func TestAddItemAssignsIDAndTotal(t *testing.T) {
	c := &Cart{}
	item := lineItem(uuid.New(), 4, 180000)
	item.ID = ""
	c.AddItem(item)

	require.NotEmpty(t, c.Items[0].ID)
	require.Equal(t, int64(720000), c.Items[0].TotalPrice)
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	c := &Cart{}
	c.AddItem(lineItem(uuid.New(), 0, 10000))
	c.AddItem(lineItem(uuid.New(), -2, 10000))
	require.Empty(t, c.Items)
}

func TestRemoveItem(t *testing.T) {
	c := &Cart{}
	item := lineItem(uuid.New(), 1, 10000)
	c.AddItem(item)

	c.RemoveItem("does-not-exist")
	require.Len(t, c.Items, 1)

	c.RemoveItem(item.ID)
	require.Empty(t, c.Items)
}

func TestUpdateQuantity(t *testing.T) {
	c := &Cart{}
	item := lineItem(uuid.New(), 2, 25000)
	c.AddItem(item)

	c.UpdateQuantity(item.ID, 5)
	require.Equal(t, 5, c.Items[0].Quantity)
	require.Equal(t, int64(125000), c.Items[0].TotalPrice)

	// decrementing past zero leaves the line untouched rather than deleting it
	c.UpdateQuantity(item.ID, 0)
	require.Equal(t, 5, c.Items[0].Quantity)

	c.UpdateQuantity(item.ID, -3)
	require.Equal(t, 5, c.Items[0].Quantity)

	c.UpdateQuantity("does-not-exist", 9)
	require.Equal(t, 5, c.Items[0].Quantity)
}

func TestDerivedTotals(t *testing.T) {
	c := &Cart{}
	require.Equal(t, 0, c.TotalItems())
	require.Equal(t, int64(0), c.TotalPrice())

	c.AddItem(lineItem(uuid.New(), 2, 25000))
	c.AddItem(lineItem(uuid.New(), 1, 890000))

	require.Equal(t, 3, c.TotalItems())
	require.Equal(t, int64(940000), c.TotalPrice())

	c.Clear()
	require.Equal(t, 0, c.TotalItems())
	require.Equal(t, int64(0), c.TotalPrice())
}
