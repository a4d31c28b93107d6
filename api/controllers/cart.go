package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/api/middleware"
	"github.com/minhvuongle/yenvang-backend/api/responses"
	"github.com/minhvuongle/yenvang-backend/api/validators"
	cartpkg "github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/internal/pricing"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/money"
)

type cartResponse struct {
	Items          []cartpkg.LineItem `json:"items"`
	TotalItems     int                `json:"totalItems"`
	TotalPrice     int64              `json:"totalPrice"`
	FormattedTotal string             `json:"formattedTotal"`
}

func cartView(c cartpkg.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cartpkg.LineItem{}
	}
	return cartResponse{
		Items:          items,
		TotalItems:     c.TotalItems(),
		TotalPrice:     c.TotalPrice(),
		FormattedTotal: money.FormatVND(c.TotalPrice()),
	}
}

// GetCart serves the session's current cart.
func GetCart(manager *cartpkg.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, cartView(manager.Get(r.Context(), sessionID)))
	}
}

type addItemRequest struct {
	ProductID       string  `json:"productId" validate:"required,uuid"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	SelectedType    *string `json:"selectedType,omitempty"`
	SelectedWeight  *string `json:"selectedWeight,omitempty"`
	SelectedVolume  *string `json:"selectedVolume,omitempty"`
	SelectedPackage *int    `json:"selectedPackage,omitempty"`
}

// AddCartItem prices the selection server side and merges it into the
// session's cart. The client never supplies a price.
func AddCartItem(manager *cartpkg.Manager, catalogSvc catalog.Service, resolver *pricing.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := priceLineItem(r.Context(), catalogSvc, resolver, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		updated := manager.AddItem(r.Context(), sessionID, item)
		responses.WriteSuccessStatus(w, http.StatusCreated, cartView(updated))
	}
}

// priceLineItem resolves the product and prices the selection server side.
// Selections on a non-custom product are discarded, matching the resolver's
// pricing rules.
func priceLineItem(ctx context.Context, catalogSvc catalog.Service, resolver *pricing.Resolver, payload addItemRequest) (cartpkg.LineItem, error) {
	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		return cartpkg.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}

	product, err := catalogSvc.GetByID(ctx, productID)
	if err != nil {
		return cartpkg.LineItem{}, err
	}

	if payload.SelectedVolume != nil && !catalog.HasVolume(product, *payload.SelectedVolume) {
		return cartpkg.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown volume option")
	}
	if payload.SelectedPackage != nil {
		if _, ok := catalog.FindPackage(product, *payload.SelectedPackage); !ok {
			return cartpkg.LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown package option")
		}
	}

	quote := resolver.Resolve(product, payload.SelectedType, payload.SelectedWeight, payload.Quantity)

	item := cartpkg.LineItem{
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductCategory: product.Category,
		Quantity:        payload.Quantity,
		SelectedType:    payload.SelectedType,
		SelectedWeight:  payload.SelectedWeight,
		SelectedVolume:  payload.SelectedVolume,
		SelectedPackage: payload.SelectedPackage,
		Price:           quote.UnitPrice,
	}
	if len(product.Images) > 0 {
		item.ProductImage = &product.Images[0]
	}
	if !product.IsCustom() {
		item.SelectedType = nil
		item.SelectedWeight = nil
		item.SelectedVolume = nil
		item.SelectedPackage = nil
	}
	return item, nil
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItem sets a line's quantity.
func UpdateCartItem(manager *cartpkg.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		itemID := chi.URLParam(r, "itemID")
		updated := manager.UpdateQuantity(r.Context(), sessionID, itemID, payload.Quantity)
		responses.WriteSuccess(w, cartView(updated))
	}
}

// RemoveCartItem drops a line. Removing an unknown line succeeds with the
// unchanged cart.
func RemoveCartItem(manager *cartpkg.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		itemID := chi.URLParam(r, "itemID")
		updated := manager.RemoveItem(r.Context(), sessionID, itemID)
		responses.WriteSuccess(w, cartView(updated))
	}
}

// ClearCart empties the session's cart.
func ClearCart(manager *cartpkg.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		updated := manager.Clear(r.Context(), sessionID)
		responses.WriteSuccess(w, cartView(updated))
	}
}
