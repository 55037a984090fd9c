package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/internal/orders"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// AdminOrderList serves the dashboard order table. Query params: status,
// sortField, sortDirection, limit; unknown sort input falls back to
// created_at descending inside the repo.
func AdminOrderList(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := orders.ListParams{
			SortField:     r.URL.Query().Get("sortField"),
			SortDirection: r.URL.Query().Get("sortDirection"),
		}

		if raw := r.URL.Query().Get("status"); raw != "" {
			status := enums.FulfillmentStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid fulfillment status").
						WithDetails(map[string]any{"status": raw}))
				return
			}
			params.FulfillmentStatus = &status
		}

		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				params.Limit = parsed
			}
		}

		rows, err := svc.AdminList(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminToggleFulfillment flips an order between unfulfilled and fulfilled.
func AdminToggleFulfillment(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := chi.URLParam(r, "orderID")

		result, err := svc.ToggleFulfillment(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
