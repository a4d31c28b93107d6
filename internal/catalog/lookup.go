package catalog

import (
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/types"
)

// FindType returns the selectable type matching typeID. A miss is a normal
// outcome: nothing is selected on first render.
func FindType(p *models.Product, typeID string) (*types.ProductType, bool) {
	if p == nil || !p.IsCustom() || typeID == "" {
		return nil, false
	}
	for i := range p.Types {
		if p.Types[i].ID == typeID {
			return &p.Types[i], true
		}
	}
	return nil, false
}

// FindWeight returns the weight option matching weightID within the given type.
func FindWeight(t *types.ProductType, weightID string) (*types.WeightOption, bool) {
	if t == nil || weightID == "" {
		return nil, false
	}
	for i := range t.WeightOptions {
		if t.WeightOptions[i].ID == weightID {
			return &t.WeightOptions[i], true
		}
	}
	return nil, false
}

// FindPackage returns the package option matching pkgID.
func FindPackage(p *models.Product, pkgID int) (*types.PackageOption, bool) {
	if p == nil || !p.IsCustom() {
		return nil, false
	}
	for i := range p.PackageOptions {
		if p.PackageOptions[i].ID == pkgID {
			return &p.PackageOptions[i], true
		}
	}
	return nil, false
}

// HasVolume reports whether label is one of the product's volume options.
func HasVolume(p *models.Product, label string) bool {
	if p == nil || !p.IsCustom() || label == "" {
		return false
	}
	for _, v := range p.VolumeOptions {
		if v == label {
			return true
		}
	}
	return false
}
