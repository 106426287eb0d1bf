package routes

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasmendez/pizzeria-backend/api/controllers"
	"github.com/lucasmendez/pizzeria-backend/api/middleware"
	"github.com/lucasmendez/pizzeria-backend/internal/admin"
	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/pkg/auth/session"
	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
	"github.com/lucasmendez/pizzeria-backend/pkg/metrics"
	pkgredis "github.com/lucasmendez/pizzeria-backend/pkg/redis"
)

type sessionManager interface {
	session.Checker
	Register(context.Context, string) error
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *pkgredis.Client,
	sessions sessionManager,
	store *catalog.Store,
	adminService *admin.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pinger(redisClient), store))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/pizzas", controllers.CatalogFetch(store))
		r.Get("/whatsapp-config", controllers.ContactFetch(store))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/quote", controllers.OrderQuote(logg))
			r.Post("/checkout", controllers.OrderCheckout(store, cfg.App.Location(), logg))
		})

		verify := controllers.AdminVerify(cfg.Admin, cfg.Session, sessions, logg)
		if redisClient != nil {
			r.With(middleware.LoginRateLimit(
				cfg.AuthRateLimit.LoginWindow,
				cfg.AuthRateLimit.LoginIPLimit,
				redisClient,
				logg,
			)).Post("/admin/verify", verify)
		} else {
			r.Post("/admin/verify", verify)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Session, sessions, logg))
			r.Put("/pizzas/{pizzaId}/data", controllers.CatalogItemUpdate(adminService, logg))
			r.Post("/pizzas/{pizzaId}/image", controllers.CatalogItemImage(adminService, cfg.Storage.MaxUploadBytes(), logg))
			r.Put("/whatsapp-config", controllers.ContactUpdate(adminService, logg))
			r.Post("/admin/logout", controllers.AdminLogout(sessions, logg))
		})
	})

	uploads := filepath.Join(cfg.Storage.DataDir, cfg.Storage.UploadsDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads))))

	return r
}

// pinger avoids handing HealthReady a typed nil when Redis is disabled.
func pinger(c *pkgredis.Client) pkgredis.Pinger {
	if c == nil {
		return nil
	}
	return c
}
