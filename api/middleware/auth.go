package middleware

import (
	"net/http"
	"strings"

	"github.com/lucasmendez/pizzeria-backend/api/responses"
	pkgauth "github.com/lucasmendez/pizzeria-backend/pkg/auth"
	"github.com/lucasmendez/pizzeria-backend/pkg/auth/session"
	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

// AdminAuth validates the bearer session token issued by the verify
// endpoint and checks that the session is still live. Privileged
// catalog mutations sit behind this gate.
func AdminAuth(cfg config.SessionConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciales requeridas"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "sesión inválida"))
				return
			}
			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sesión inválida"))
				return
			}

			if checker != nil {
				ok, err := checker.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validando sesión"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sesión expirada"))
					return
				}
			}

			ctx := ContextWithSessionID(r.Context(), claims.ID)
			if logg != nil {
				ctx = logg.WithField(ctx, "actor_role", claims.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
