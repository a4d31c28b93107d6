package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhvuongle/yenvang-backend/api/middleware"
	"github.com/minhvuongle/yenvang-backend/api/responses"
	"github.com/minhvuongle/yenvang-backend/api/validators"
	cartpkg "github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/internal/orders"
	"github.com/minhvuongle/yenvang-backend/internal/pricing"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

type orderFormRequest struct {
	CustomerName string  `json:"customerName" validate:"required,min=2"`
	PhoneNumber  string  `json:"phoneNumber" validate:"required,min=8"`
	Address      string  `json:"address" validate:"required,min=5"`
	Note         *string `json:"note,omitempty"`
}

func (r orderFormRequest) toForm() orders.OrderForm {
	return orders.OrderForm{
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
		Address:      r.Address,
		Note:         r.Note,
	}
}

// CreateOrder submits the session's cart as an order. The cart is cleared
// only after the order is persisted.
func CreateOrder(svc orders.Service, manager *cartpkg.Manager, pool *orders.SubmitterPool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderFormRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		current := manager.Get(r.Context(), sessionID)

		order, err := pool.For(sessionID).Submit(r.Context(), func(ctx context.Context) (*models.Order, error) {
			return svc.CreateFromCart(ctx, payload.toForm(), current.Items)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		manager.Clear(r.Context(), sessionID)
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type directOrderRequest struct {
	orderFormRequest
	Item addItemRequest `json:"item" validate:"required"`
}

// CreateDirectOrder handles "buy now": a single priced item ordered without
// touching the cart.
func CreateDirectOrder(svc orders.Service, catalogSvc catalog.Service, resolver *pricing.Resolver, pool *orders.SubmitterPool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload directOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := priceLineItem(r.Context(), catalogSvc, resolver, payload.Item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := pool.For(sessionID).Submit(r.Context(), func(ctx context.Context) (*models.Order, error) {
			return svc.CreateDirect(ctx, payload.toForm(), item)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// GetOrder serves one order for tracking.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetByID(r.Context(), chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ListOrders looks up a customer's orders by phone number.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := r.URL.Query().Get("phone")
		if phone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "phone query parameter is required"))
			return
		}

		rows, err := svc.ListByPhone(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []models.Order{}
		}
		responses.WriteSuccess(w, rows)
	}
}
