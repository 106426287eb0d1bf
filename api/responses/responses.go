package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

// StatusPayload is the {success, message} shape the admin panel and the
// storefront expect from every mutation.
type StatusPayload struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ImageRef string `json:"imageRef,omitempty"`
	Token    string `json:"token,omitempty"`
	// ExpiresIn is the session lifetime in seconds, present on verify.
	ExpiresIn int64 `json:"expiresIn,omitempty"`
}

// WriteStatus reports a successful mutation.
func WriteStatus(w http.ResponseWriter, payload StatusPayload) {
	payload.Success = true
	WriteJSON(w, http.StatusOK, payload)
}

// WriteData writes a bare JSON document, used by the read endpoints
// whose response shape is the stored document itself.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteError maps a typed error to its HTTP status and the
// {success:false, message} shape. Internals are logged, never surfaced.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if meta.DetailsAllowed || typed.Code() == pkgerrors.CodeValidation || typed.Code() == pkgerrors.CodeUnauthorized {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error":      err.Error(),
			"error_code": string(typed.Code()),
		})
		logg.Error(ctx, "request.error", err)
	}

	WriteJSON(w, meta.HTTPStatus, StatusPayload{Success: false, Message: msg})
}

// WriteJSON serializes any payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
