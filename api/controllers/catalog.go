package controllers

import (
	"net/http"

	"github.com/caribvital/seamoss-backend/api/responses"
	"github.com/caribvital/seamoss-backend/internal/catalog"
	pkgerrors "github.com/caribvital/seamoss-backend/pkg/errors"
	"github.com/caribvital/seamoss-backend/pkg/logger"
)

// CatalogList serves the product list, optionally filtered by ?category=.
func CatalogList(provider *catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var category catalog.Category
		if raw := r.URL.Query().Get("category"); raw != "" {
			parsed, err := catalog.ParseCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = parsed
		}

		responses.WriteSuccess(w, provider.List(category))
	}
}
