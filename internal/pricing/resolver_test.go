package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/types"
)

func strPtr(s string) *string { return &s }

func customProduct() *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      "Yến chưng tươi",
		BasePrice: 15000,
		Category:  enums.ProductCategoryCustom,
		Types: types.ProductTypes{
			{
				ID:        "type-premium",
				Name:      "Thượng hạng",
				BasePrice: 20000,
				WeightOptions: []types.WeightOption{
					{ID: "50g", Name: "50g", Extra: 5000},
					{ID: "100g", Name: "100g", Extra: 12000},
				},
			},
			{
				ID:   "type-basic",
				Name: "Tiêu chuẩn",
				// no base price override on purpose
				WeightOptions: []types.WeightOption{
					{ID: "50g", Name: "50g", Extra: 3000},
				},
			},
			{
				ID:        "type-zero",
				Name:      "Khuyến mãi",
				BasePrice: 0,
			},
		},
	}
}

func TestResolveNonCustomIgnoresSelections(t *testing.T) {
	for _, category := range []enums.ProductCategory{enums.ProductCategoryCombo, enums.ProductCategoryUnit} {
		p := &models.Product{ID: uuid.New(), BasePrice: 890000, Category: category}

		// stale selections from a previously viewed product must not matter
		quote := Resolve(p, strPtr("type-premium"), strPtr("50g"), 2)
		require.Equal(t, int64(890000), quote.BasePrice)
		require.Equal(t, int64(0), quote.ExtraPrice)
		require.Equal(t, int64(890000), quote.UnitPrice)
		require.Equal(t, int64(1780000), quote.TotalPrice)
	}
}

func TestResolveCustomFullSelection(t *testing.T) {
	quote := Resolve(customProduct(), strPtr("type-premium"), strPtr("50g"), 3)

	require.Equal(t, int64(20000), quote.BasePrice)
	require.Equal(t, int64(5000), quote.ExtraPrice)
	require.Equal(t, int64(25000), quote.UnitPrice)
	require.Equal(t, int64(75000), quote.TotalPrice)
	require.Equal(t, "75.000đ", quote.FormattedTotal)
}

func TestResolveNoSelectionFallsBackToBasePrice(t *testing.T) {
	p := customProduct()

	quote := Resolve(p, nil, nil, 1)
	require.Equal(t, int64(15000), quote.UnitPrice)

	// unknown type id behaves like no selection
	quote = Resolve(p, strPtr("type-missing"), strPtr("50g"), 1)
	require.Equal(t, int64(15000), quote.UnitPrice)
	require.Equal(t, int64(0), quote.ExtraPrice)
}

func TestResolveWeightWithoutOverrideKeepsProductBase(t *testing.T) {
	quote := Resolve(customProduct(), strPtr("type-basic"), strPtr("50g"), 2)

	require.Equal(t, int64(15000), quote.BasePrice)
	require.Equal(t, int64(3000), quote.ExtraPrice)
	require.Equal(t, int64(36000), quote.TotalPrice)
}

// A type-level base price of exactly 0 is treated as absent and falls back to
// the product base price. Intentional: pins the storefront's long-standing
// behavior until product decides whether 0 should be a valid override.
func TestResolveZeroTypeBasePriceFallsBack(t *testing.T) {
	quote := Resolve(customProduct(), strPtr("type-zero"), nil, 1)

	require.Equal(t, int64(15000), quote.BasePrice)
	require.Equal(t, int64(15000), quote.UnitPrice)
}

func TestResolveUnknownWeightHasNoExtra(t *testing.T) {
	quote := Resolve(customProduct(), strPtr("type-premium"), strPtr("999g"), 1)

	require.Equal(t, int64(20000), quote.UnitPrice)
	require.Equal(t, int64(0), quote.ExtraPrice)
}

func TestResolveNilProduct(t *testing.T) {
	quote := Resolve(nil, strPtr("type-premium"), nil, 4)
	require.Equal(t, int64(0), quote.TotalPrice)
	require.Equal(t, "0đ", quote.FormattedTotal)
}

func TestResolverMemoizesAndInvalidates(t *testing.T) {
	p := customProduct()
	r := NewResolver()

	first := r.Resolve(p, strPtr("type-premium"), strPtr("50g"), 3)
	require.Equal(t, int64(75000), first.TotalPrice)

	// mutate the catalog row behind the cache's back: memoized value sticks
	p.Types[0].BasePrice = 99000
	cached := r.Resolve(p, strPtr("type-premium"), strPtr("50g"), 3)
	require.Equal(t, first, cached)

	// a different quantity is a different tuple
	other := r.Resolve(p, strPtr("type-premium"), strPtr("50g"), 4)
	require.Equal(t, int64(416000), other.TotalPrice)

	r.Invalidate(p.ID.String())
	fresh := r.Resolve(p, strPtr("type-premium"), strPtr("50g"), 3)
	require.Equal(t, int64(312000), fresh.TotalPrice)
}
