// Package pricing derives unit and total prices from a product and its
// selected variant dimensions. Resolution never fails: missing or unknown
// selections degrade to the product's base price so a half-configured
// selection still renders a sensible amount.
package pricing

import (
	"sync"

	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/money"
)

// Quote is the fully resolved price for one (product, selection, quantity)
// tuple. FormattedTotal is presentation-only.
type Quote struct {
	BasePrice      int64  `json:"basePrice"`
	ExtraPrice     int64  `json:"extraPrice"`
	UnitPrice      int64  `json:"unitPrice"`
	TotalPrice     int64  `json:"totalPrice"`
	FormattedTotal string `json:"formattedTotal"`
}

// Resolve computes the quote for the given selection.
//
// Combo/unit products price at BasePrice and ignore selections entirely, so
// stale type/weight ids from a previous product can never leak into the
// price. For custom products the selected type may override the base price;
// a type-level base price of 0 is treated as "no override" and falls back to
// the product's base price (kept from the storefront's original behavior,
// see the resolver tests).
func Resolve(p *models.Product, typeID, weightID *string, quantity int) Quote {
	if p == nil {
		return quoteOf(0, 0, quantity)
	}
	if !p.IsCustom() {
		return quoteOf(p.BasePrice, 0, quantity)
	}

	basePrice := p.BasePrice
	extraPrice := int64(0)

	if currentType, ok := catalog.FindType(p, deref(typeID)); ok {
		if currentType.BasePrice != 0 {
			basePrice = currentType.BasePrice
		}
		if currentWeight, ok := catalog.FindWeight(currentType, deref(weightID)); ok {
			extraPrice = currentWeight.Extra
		}
	}

	return quoteOf(basePrice, extraPrice, quantity)
}

func quoteOf(basePrice, extraPrice int64, quantity int) Quote {
	unitPrice := basePrice + extraPrice
	totalPrice := money.MulQty(unitPrice, quantity)
	return Quote{
		BasePrice:      basePrice,
		ExtraPrice:     extraPrice,
		UnitPrice:      unitPrice,
		TotalPrice:     totalPrice,
		FormattedTotal: money.FormatVND(totalPrice),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type cacheKey struct {
	productID string
	typeID    string
	weightID  string
	quantity  int
}

// Resolver memoizes quotes per exact input tuple. The cache key includes the
// product id only, so Invalidate must be called when a catalog row changes.
type Resolver struct {
	mu    sync.Mutex
	cache map[cacheKey]Quote
}

// NewResolver builds an empty memoizing resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[cacheKey]Quote)}
}

// Resolve returns the memoized quote, computing it on first sight.
func (r *Resolver) Resolve(p *models.Product, typeID, weightID *string, quantity int) Quote {
	if p == nil {
		return Resolve(p, typeID, weightID, quantity)
	}

	key := cacheKey{
		productID: p.ID.String(),
		typeID:    deref(typeID),
		weightID:  deref(weightID),
		quantity:  quantity,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if quote, ok := r.cache[key]; ok {
		return quote
	}
	quote := Resolve(p, typeID, weightID, quantity)
	r.cache[key] = quote
	return quote
}

// Invalidate drops all memoized quotes for the given product.
func (r *Resolver) Invalidate(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.cache {
		if key.productID == productID {
			delete(r.cache, key)
		}
	}
}
