package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/lucasmendez/pizzeria-backend/pkg/config"
)

// CORS applies the configured origin policy. The storefront is served
// from the same host by default, so the permissive "*" default only
// matters for local development against a separate dev server.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}).Handler
}
