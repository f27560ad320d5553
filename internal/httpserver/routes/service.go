package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/mw"
)

func init() { Register(registerService) }

func registerService(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.ControlBurst,
		RefillPerIPPerMin: d.ControlRefillPerMin,
		MaxEntries:        1024,
		TrustProxy:        d.TrustProxy,
	})

	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), limit).
		Post("/api/service/{name}/{action}", handlers.ServiceAction(d))
}
