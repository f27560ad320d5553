package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/files"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

type filesResponse struct {
	Files []string `json:"files"`
}

// ListFiles returns the browsable files of a project.
func ListFiles(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service := chi.URLParam(r, "service")

		names, err := d.Files.List(service)
		switch {
		case errors.Is(err, files.ErrUnknownProject):
			writeError(w, http.StatusNotFound, msgUnknownProject)
			return
		case err != nil:
			d.Logger.Warn("failed to list project files",
				logger.String("service", service),
				logger.Error(err))
			names = []string{}
		}

		writeJSON(w, http.StatusOK, filesResponse{Files: names})
	}
}

// ReadFile returns one whitelisted file of a project.
func ReadFile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service := chi.URLParam(r, "service")
		name := r.URL.Query().Get("name")

		f, err := d.Files.Read(service, name)
		switch {
		case errors.Is(err, files.ErrUnknownProject):
			writeError(w, http.StatusNotFound, msgUnknownProject)
			return
		case errors.Is(err, files.ErrNotAllowed):
			d.Logger.Debug("file access rejected",
				logger.String("service", service),
				logger.String("name", name))
			writeError(w, http.StatusForbidden, msgNotAllowed)
			return
		case err != nil:
			d.Logger.Error("failed to read project file",
				logger.String("service", service),
				logger.String("name", name),
				logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, f)
	}
}
