package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
)

type componentStatus struct {
	OK       bool   `json:"ok"`
	Backend  string `json:"backend,omitempty"`
	Projects *int   `json:"projects,omitempty"`
	Error    string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports whether the catalog is loaded and the journal store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := d.Catalog.Len()
		components := map[string]componentStatus{
			"catalog": {
				OK:       projects > 0,
				Projects: &projects,
			},
			"journal": checkJournal(r.Context(), d),
		}

		ready := true
		for _, c := range components {
			ready = ready && c.OK
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready, Components: components})
	}
}

func checkJournal(ctx context.Context, d deps.Deps) componentStatus {
	if d.Journal == nil {
		return componentStatus{OK: false, Error: "not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Journal.Ping(ctx); err != nil {
		return componentStatus{OK: false, Backend: d.JournalBackend, Error: "unreachable"}
	}
	return componentStatus{OK: true, Backend: d.JournalBackend}
}
