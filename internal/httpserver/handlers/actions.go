package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

const defaultActionsLimit = 20

type actionsResponse struct {
	Backend string                `json:"backend"`
	Actions []domain.ActionRecord `json:"actions"`
	Counts  map[string]int64      `json:"counts"`
}

// Actions returns the most recent control actions, newest first.
func Actions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit := parseLimit(r.URL.Query().Get("limit"), d.JournalSize)

		recent, err := d.Journal.Recent(ctx, limit)
		if err != nil {
			d.Logger.Warn("failed to read action journal", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "journal unavailable")
			return
		}
		counts, err := d.Journal.Counts(ctx)
		if err != nil {
			d.Logger.Warn("failed to read action counters", logger.Error(err))
			counts = map[string]int64{}
		}

		writeJSON(w, http.StatusOK, actionsResponse{
			Backend: d.JournalBackend,
			Actions: recent,
			Counts:  counts,
		})
	}
}

// parseLimit reads ?limit=, defaulting to defaultActionsLimit and capping at max.
func parseLimit(raw string, max int) int {
	limit := defaultActionsLimit
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		limit = n
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
