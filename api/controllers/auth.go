package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lucasmendez/pizzeria-backend/api/middleware"
	"github.com/lucasmendez/pizzeria-backend/api/responses"
	"github.com/lucasmendez/pizzeria-backend/api/validators"
	pkgauth "github.com/lucasmendez/pizzeria-backend/pkg/auth"
	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
	"github.com/lucasmendez/pizzeria-backend/pkg/security"
)

type sessionRegistrar interface {
	Register(ctx context.Context, sessionID string) error
}

type sessionRevoker interface {
	Revoke(ctx context.Context, sessionID string) error
}

type verifyRequest struct {
	Password string `json:"password"`
}

// AdminVerify checks the fixed admin credential and, on success, issues
// a short-lived session token the privileged routes require. The old
// behavior of a client-side authenticated flag is gone: the server owns
// the session now.
func AdminVerify(adminCfg config.AdminConfig, sessionCfg config.SessionConfig, sessions sessionRegistrar, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := security.VerifyAdminPassword(payload.Password, adminCfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verificando credencial"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Contraseña incorrecta"))
			return
		}

		token, claims, err := pkgauth.MintSessionToken(sessionCfg, time.Now(), "")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emitiendo sesión"))
			return
		}
		if sessions != nil {
			if err := sessions.Register(r.Context(), claims.ID); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "registrando sesión"))
				return
			}
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "session_id", claims.ID), "admin session issued")
		}

		responses.WriteStatus(w, responses.StatusPayload{
			Message:   "Autenticación correcta",
			Token:     token,
			ExpiresIn: int64(sessionCfg.TTL().Seconds()),
		})
	}
}

// AdminLogout revokes the presented session ahead of its expiry.
func AdminLogout(sessions sessionRevoker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sesión inválida"))
			return
		}
		if sessions != nil {
			if err := sessions.Revoke(r.Context(), sessionID); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cerrando sesión"))
				return
			}
		}
		responses.WriteStatus(w, responses.StatusPayload{Message: "Sesión cerrada"})
	}
}
