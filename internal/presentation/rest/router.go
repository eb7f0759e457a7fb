package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bibbank/vaddi/pkg/auth"
)

// RouterDeps collects what NewRouter needs. Nil optional fields disable the
// matching feature.
type RouterDeps struct {
	Calculations *CalculationHandler
	Health       *HealthHandler
	Metrics      http.Handler
	RateLimiter  *RateLimiter
	JWT          *auth.JWTService
	Logger       *slog.Logger
}

// NewRouter builds the HTTP API.
//
//	GET  /healthz, /readyz, /metrics        unauthenticated
//	POST /api/v1/calculations               rate limited, optional JWT
//	GET  /api/v1/calculations/{id}
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(LoggingMiddleware(deps.Logger))

	r.Get("/healthz", deps.Health.liveness)
	r.Get("/readyz", deps.Health.readiness)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/v1/calculations", func(r chi.Router) {
		if deps.JWT != nil {
			r.Use(auth.HTTPMiddleware(deps.JWT))
		}
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}
		r.Post("/", deps.Calculations.Calculate)
		r.Get("/{id}", deps.Calculations.Get)
	})

	return r
}
