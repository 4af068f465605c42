package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/DanieleFedeli/lyra/internal/auth/apikey"
	"github.com/DanieleFedeli/lyra/internal/auth/ratelimit"
	"github.com/DanieleFedeli/lyra/pkg/health"
	"github.com/DanieleFedeli/lyra/pkg/metrics"
	pkgmw "github.com/DanieleFedeli/lyra/pkg/middleware"
)

// Router wires every route and middleware layer into a single http.Handler.
//
// Route table:
//
//	POST   /documents      insert a document
//	DELETE /documents/{id} delete a document by id
//	POST   /search         run a search query
//	GET    /healthz        liveness probe
//	GET    /readyz         readiness probe (runs registered checks)
//	GET    /metrics        Prometheus scrape endpoint
//
// Middleware chain (outermost first):
//
//	RequestID -> Metrics -> Timeout -> Auth -> RateLimit -> handler
func Router(h *Handler, validator *apikey.Validator, limiter *ratelimit.Limiter, checker *health.Checker, m *metrics.Metrics, writeTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(pkgmw.Metrics(m))
	r.Use(Timeout(writeTimeout))

	r.Get("/healthz", checker.LiveHandler())
	r.Get("/readyz", checker.ReadyHandler())
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(api chi.Router) {
		api.Use(Auth(validator))
		api.Use(RateLimit(limiter))
		api.Post("/documents", h.PostDocument)
		api.Delete("/documents/{id}", h.DeleteDocument)
		api.Post("/search", h.PostSearch)
	})

	return r
}
