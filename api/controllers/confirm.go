package controllers

import (
	"net/http"

	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/api/validators"
	"github.com/caribvital/seamoss-backend/internal/orders"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

type confirmRequest struct {
	PaymentIntentClientSecret string `json:"paymentIntentClientSecret"`
}

// CheckoutConfirm runs the post-payment reconciliation. A succeeded payment
// whose order insert failed is surfaced as a reconciliation error so the
// client can route the user to support; every other outcome is a success
// envelope the confirmation page renders from.
func CheckoutConfirm(reconciler *orders.Reconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		session := middleware.CartSessionFromContext(r.Context())

		var payload confirmRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := reconciler.Confirm(r.Context(), userID, session, payload.PaymentIntentClientSecret)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Outcome == orders.OutcomeUnrecorded {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeReconciliation, result.Message).
					WithDetails(map[string]any{"orderId": result.OrderID}))
			return
		}

		responses.WriteSuccess(w, result)
	}
}
