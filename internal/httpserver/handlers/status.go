package handlers

import (
	"net/http"
	"sync"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
)

type statusResponse struct {
	Projects []domain.ProjectStatus `json:"projects"`
	System   domain.SystemSnapshot  `json:"system"`
}

// Status returns every configured project with its live state, plus a host
// resource snapshot. The CPU sample runs while the services are queried.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var (
			wg        sync.WaitGroup
			usage     domain.ResourceUsage
			sampleErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			usage, sampleErr = d.Sampler.Sample(ctx)
		}()

		projects := d.Catalog.Projects()
		statuses := make([]domain.ProjectStatus, 0, len(projects))
		for _, p := range projects {
			state, err := domain.QueryState(ctx, d.Services, p.Service)
			if err != nil {
				d.Logger.Warn("service state unavailable",
					logger.String("service", p.Service),
					logger.Error(err))
			}
			statuses = append(statuses, domain.NewProjectStatus(p, state))
		}

		wg.Wait()
		if sampleErr != nil {
			d.Logger.Warn("incomplete resource sample", logger.Error(sampleErr))
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Projects: statuses,
			System:   domain.NewSystemSnapshot(usage),
		})
	}
}
