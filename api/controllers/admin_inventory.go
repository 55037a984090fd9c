package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/api/validators"
	"github.com/caribvital/seamoss-backend/internal/inventory"
	"github.com/caribvital/seamoss-backend/pkg/enums"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

type updateInventoryRequest struct {
	NewLevel     int     `json:"newLevel" validate:"min=0"`
	ChangeType   string  `json:"changeType" validate:"required"`
	ChangeReason *string `json:"changeReason,omitempty"`
}

// AdminInventoryLevels lists tracked stock levels.
func AdminInventoryLevels(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Levels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminInventoryHistory lists the adjustment trail for one product.
func AdminInventoryHistory(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}

		rows, err := svc.History(r.Context(), productID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminInventoryUpdate sets a product's level and records the adjustment.
func AdminInventoryUpdate(svc *inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateLevel(r.Context(), inventory.UpdateParams{
			ProductID:    productID,
			NewLevel:     payload.NewLevel,
			ChangeType:   enums.InventoryChangeType(payload.ChangeType),
			ChangeReason: payload.ChangeReason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
