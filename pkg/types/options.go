package types

// ProductType is one selectable preparation of a custom product. Price is the
// type's own contribution shown in listings; BasePrice, when non-zero,
// replaces the product-level base price once the type is selected.
type ProductType struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	PriceText     string         `json:"priceText"`
	BasePrice     int64          `json:"basePrice,omitempty"`
	WeightOptions []WeightOption `json:"weightOptions"`
}

// WeightOption is an additive price delta scoped to a product type.
type WeightOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Extra     int64  `json:"extra"`
	ExtraText string `json:"extraText"`
}

// PackageOption is a gift-wrap/packaging choice for a custom product.
type PackageOption struct {
	ID              int     `json:"id"`
	Image           *string `json:"image"`
	Name            string  `json:"name"`
	AdditionalPrice int64   `json:"additionalPrice,omitempty"`
}

// ProductTypes is stored as a JSON column on the product row.
type ProductTypes []ProductType

// PackageOptions is stored as a JSON column on the product row.
type PackageOptions []PackageOption

// SuccessEnvelope wraps successful API payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope wraps API failures.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// APIError is the public error shape.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
