package controllers

import (
	"net/http"

	"github.com/caribvital/seamoss-backend/api/middleware"
	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/api/validators"
	"github.com/caribvital/seamoss-backend/internal/checkout"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

const shippingAddressHeader = "X-Shipping-Address"

// CheckoutPaymentIntent opens (or reuses) a payment intent for the cart. The
// shipping snapshot rides on a header so it lands in the intent metadata
// verbatim.
func CheckoutPaymentIntent(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkout.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload.UserID = middleware.UserIDFromContext(r.Context())
		payload.CartSession = middleware.CartSessionFromContext(r.Context())
		payload.ShippingAddressRaw = r.Header.Get(shippingAddressHeader)

		result, err := svc.CreatePaymentIntent(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
