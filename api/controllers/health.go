package controllers

import (
	"net/http"
	"os"

	"github.com/lucasmendez/pizzeria-backend/api/responses"
	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
	pkgredis "github.com/lucasmendez/pizzeria-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteData(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the session store and the data directory before
// reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient pkgredis.Pinger, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "readiness: redis unreachable", err)
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		if store != nil {
			if _, err := os.Stat(store.RootDir()); err != nil {
				checks["storage"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "readiness: data dir missing", err)
				}
			} else {
				checks["storage"] = "ok"
			}
		}

		status := http.StatusOK
		checks["status"] = "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			checks["status"] = "degraded"
		}
		responses.WriteJSON(w, status, checks)
	}
}
