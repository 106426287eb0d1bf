package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lucasmendez/pizzeria-backend/api/responses"
	"github.com/lucasmendez/pizzeria-backend/api/validators"
	"github.com/lucasmendez/pizzeria-backend/internal/admin"
	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

// CatalogFetch serves the full catalog document. Missing or corrupt
// storage degrades to an empty mapping, never an error.
func CatalogFetch(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteData(w, store.ReadCatalog(r.Context()))
	}
}

type itemUpdateRequest struct {
	WholePrice  *float64 `json:"wholePrice" validate:"required,gte=0"`
	HalfPrice   *float64 `json:"halfPrice" validate:"required,gte=0"`
	Ingredients string   `json:"ingredients"`
}

// CatalogItemUpdate applies a price/ingredients edit to one item.
func CatalogItemUpdate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "pizzaId")

		var payload itemUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.UpdateItem(r.Context(), id, admin.ItemUpdateInput{
			WholePrice:  decimal.NewFromFloat(*payload.WholePrice),
			HalfPrice:   decimal.NewFromFloat(*payload.HalfPrice),
			Ingredients: payload.Ingredients,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteStatus(w, responses.StatusPayload{Message: "Datos de pizza actualizados correctamente"})
	}
}

// CatalogItemImage accepts exactly one multipart image payload under
// the "image" field and swaps the item's stored image.
func CatalogItemImage(svc *admin.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "pizzaId")

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1024)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "El archivo es demasiado grande"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "No se subió ningún archivo"))
			return
		}
		defer file.Close()

		ref, err := svc.UpdateImage(r.Context(), id, header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteStatus(w, responses.StatusPayload{
			Message:  "Imagen subida correctamente",
			ImageRef: ref,
		})
	}
}
