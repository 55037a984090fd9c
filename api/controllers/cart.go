package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/api/validators"
	cartsvc "github.com/caribvital/seamoss-backend/internal/cart"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type restoreCartRequest struct {
	Items []cartsvc.Item `json:"items"`
}

// clampQuantity pins client quantities to [1,10] before they reach the
// engine, which applies values verbatim.
func clampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > cartsvc.MaxQuantityPerItem {
		return cartsvc.MaxQuantityPerItem
	}
	return qty
}

// CartFetch returns the priced cart for the session.
func CartFetch(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		view, err := svc.Get(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAddItem merges a catalog product into the cart.
func CartAddItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		view, err := svc.AddProduct(r.Context(), session, payload.ProductID, clampQuantity(payload.Quantity))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartUpdateQuantity sets a line's quantity.
func CartUpdateQuantity(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Dispatch(r.Context(), session, cartsvc.UpdateQuantity{
			ProductID: productID,
			Quantity:  clampQuantity(payload.Quantity),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem drops a line.
func CartRemoveItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		view, err := svc.Dispatch(r.Context(), session, cartsvc.RemoveItem{ProductID: productID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRestore replaces the cart from a client-held snapshot without opening
// the drawer.
func CartRestore(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())

		var payload restoreCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Dispatch(r.Context(), session, cartsvc.RestoreCart{Items: payload.Items})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartToggle flips the drawer state.
func CartToggle(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		view, err := svc.Dispatch(r.Context(), session, cartsvc.ToggleCart{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.CartSessionFromContext(r.Context())
		view, err := svc.Clear(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
