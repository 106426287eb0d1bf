package controllers

import (
	"net/http"

	"github.com/lucasmendez/pizzeria-backend/api/responses"
	"github.com/lucasmendez/pizzeria-backend/api/validators"
	"github.com/lucasmendez/pizzeria-backend/internal/admin"
	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

// ContactFetch serves the WhatsApp contact document, defaulted when
// nothing has been configured yet.
func ContactFetch(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteData(w, store.ReadContact(r.Context()))
	}
}

type contactUpdateRequest struct {
	ContactNumber string `json:"contactNumber"`
}

// ContactUpdate replaces the WhatsApp contact number. Emptiness is
// rejected by the store's validation, not silently defaulted.
func ContactUpdate(svc *admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateContact(r.Context(), payload.ContactNumber); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteStatus(w, responses.StatusPayload{Message: "Configuración de WhatsApp actualizada"})
	}
}
