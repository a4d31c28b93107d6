package enums

import "fmt"

// ProductCategory represents the canonical product categories supported by the catalog.
type ProductCategory string

const (
	// ProductCategoryCustom is a configurable preparation with selectable
	// type/weight/volume/package dimensions affecting price.
	ProductCategoryCustom ProductCategory = "custom"
	// ProductCategoryCombo is a fixed-price bundle.
	ProductCategoryCombo ProductCategory = "combo"
	// ProductCategoryUnit is a fixed-price single item.
	ProductCategoryUnit ProductCategory = "unit"
)

var validProductCategories = []ProductCategory{
	ProductCategoryCustom,
	ProductCategoryCombo,
	ProductCategoryUnit,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
