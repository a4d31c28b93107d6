package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/types"
)

func customProduct() *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      "Yến chưng tươi",
		BasePrice: 180000,
		Category:  enums.ProductCategoryCustom,
		Types: types.ProductTypes{
			{
				ID:        "type-duong-phen",
				Name:      "Đường phèn",
				Price:     180000,
				BasePrice: 200000,
				WeightOptions: []types.WeightOption{
					{ID: "70ml", Name: "70ml", Extra: 0},
					{ID: "100ml", Name: "100ml", Extra: 50000},
				},
			},
			{ID: "type-khong-duong", Name: "Không đường", Price: 180000},
		},
		VolumeOptions:  []string{"70ml", "100ml"},
		PackageOptions: types.PackageOptions{{ID: 0, Name: "Hộp thường"}, {ID: 1, Name: "Hộp quà"}},
	}
}

func TestFindType(t *testing.T) {
	p := customProduct()

	found, ok := FindType(p, "type-duong-phen")
	require.True(t, ok)
	require.Equal(t, int64(200000), found.BasePrice)

	_, ok = FindType(p, "type-missing")
	require.False(t, ok)

	// no selection yet
	_, ok = FindType(p, "")
	require.False(t, ok)

	combo := &models.Product{Category: enums.ProductCategoryCombo}
	_, ok = FindType(combo, "type-duong-phen")
	require.False(t, ok)
}

func TestFindWeight(t *testing.T) {
	p := customProduct()
	typ, ok := FindType(p, "type-duong-phen")
	require.True(t, ok)

	weight, ok := FindWeight(typ, "100ml")
	require.True(t, ok)
	require.Equal(t, int64(50000), weight.Extra)

	_, ok = FindWeight(typ, "250ml")
	require.False(t, ok)

	_, ok = FindWeight(nil, "100ml")
	require.False(t, ok)
}

func TestFindPackageAndVolume(t *testing.T) {
	p := customProduct()

	pkg, ok := FindPackage(p, 1)
	require.True(t, ok)
	require.Equal(t, "Hộp quà", pkg.Name)

	// package ids start at 0; 0 is a real option, distinct from "none"
	_, ok = FindPackage(p, 0)
	require.True(t, ok)

	_, ok = FindPackage(p, 7)
	require.False(t, ok)

	require.True(t, HasVolume(p, "70ml"))
	require.False(t, HasVolume(p, "500ml"))
}
