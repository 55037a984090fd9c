package middleware

import (
	"net/http"
	"strings"

	"github.com/caribvital/seamoss-backend/api/responses"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession requires the cart session header and seeds the context with it.
// The session id is an opaque client-generated token; carts are not tied to
// authentication.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if session == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session header is required"))
				return
			}

			ctx := WithCartSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, session)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
