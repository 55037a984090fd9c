package controllers

import (
	"net/http"
	"strconv"

	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/internal/orders"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// OrderLookup is the public intent-backed order view, keyed by ?orderId=.
func OrderLookup(svc *orders.LookupService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.URL.Query().Get("orderId")

		result, err := svc.Lookup(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrderHistory lists the session user's recorded orders.
func OrderHistory(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil {
				limit = parsed
			}
		}

		rows, err := svc.History(r.Context(), userID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
