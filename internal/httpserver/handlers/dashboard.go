package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

// Dashboard serves the single HTML page. A configured on-disk page is read on
// every request so it can be edited without a restart.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := d.Page
		if d.PageFile != "" {
			data, err := os.ReadFile(d.PageFile)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				d.Logger.Warn("dashboard page missing", logger.String("file", d.PageFile))
				http.NotFound(w, r)
				return
			case err != nil:
				d.Logger.Error("failed to read dashboard page",
					logger.String("file", d.PageFile),
					logger.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			page = data
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if _, err := w.Write(page); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
