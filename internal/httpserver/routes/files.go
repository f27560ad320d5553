package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/mw"
)

func init() { Register(registerFiles) }

func registerFiles(r chi.Router, d deps.Deps) {
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)
	r.With(host).Get("/api/files/{service}", handlers.ListFiles(d))
	r.With(host).Get("/api/file/{service}", handlers.ReadFile(d))
}
