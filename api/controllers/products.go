package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/api/responses"
	"github.com/minhvuongle/yenvang-backend/api/validators"
	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/internal/pricing"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

// ListProducts serves the storefront catalog with optional category filter
// and cursor pagination.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := catalog.ListParams{
			Category: r.URL.Query().Get("category"),
			Cursor:   r.URL.Query().Get("cursor"),
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves one product with its full variant tree.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type quoteRequest struct {
	SelectedType   *string `json:"selectedType,omitempty"`
	SelectedWeight *string `json:"selectedWeight,omitempty"`
	Quantity       int     `json:"quantity" validate:"required,gt=0"`
}

// QuoteProduct prices a selection without touching the cart, so the
// storefront can show a live total while the customer configures.
func QuoteProduct(svc catalog.Service, resolver *pricing.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote := resolver.Resolve(product, payload.SelectedType, payload.SelectedWeight, payload.Quantity)
		responses.WriteSuccess(w, quote)
	}
}
