package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/mw"
)

func init() { Register(registerDashboard) }

func registerDashboard(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/", handlers.Dashboard(d))
}
