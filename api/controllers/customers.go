package controllers

import (
	"net/http"

	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/api/validators"
	"github.com/caribvital/seamoss-backend/internal/customers"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// CustomerFetch returns the stored checkout info for the session user, or an
// empty object when nothing has been saved yet.
func CustomerFetch(svc *customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		info, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if info == nil {
			responses.WriteSuccess(w, struct{}{})
			return
		}
		responses.WriteSuccess(w, info)
	}
}

// CustomerSubmit validates the checkout form, stores it and ensures a
// processor customer exists for the email.
func CustomerSubmit(svc *customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload customers.Info
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
