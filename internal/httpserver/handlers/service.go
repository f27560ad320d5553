package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
	"github.com/MrSnakeDoc/hostdash/internal/utils"
)

type serviceActionResponse struct {
	OK     bool                `json:"ok"`
	Status domain.ServiceState `json:"status"`
}

// ServiceAction runs start/stop/restart against a configured service and
// reports the state observed afterwards. The action's own exit status is
// logged but not returned.
func ServiceAction(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		rawAction := chi.URLParam(r, "action")
		remoteIP := utils.ClientIP(r, d.TrustProxy)

		action, ok := domain.ParseAction(rawAction)
		if !ok || !d.Catalog.Allows(name) {
			d.Logger.Warn("service action rejected",
				logger.String("service", name),
				logger.String("action", rawAction),
				logger.String("remote_ip", remoteIP))
			writeError(w, http.StatusForbidden, msgNotAllowed)
			return
		}

		// A client hanging up must not abort a half-done restart.
		ctx := context.WithoutCancel(r.Context())

		d.Logger.Info("service action",
			logger.String("service", name),
			logger.String("action", string(action)),
			logger.String("remote_ip", remoteIP))

		if err := d.Services.Control(ctx, action, name); err != nil {
			d.Logger.Warn("service action failed",
				logger.String("service", name),
				logger.String("action", string(action)),
				logger.Error(err))
		}

		state, err := domain.QueryState(ctx, d.Services, name)
		if err != nil {
			d.Logger.Warn("service state unavailable",
				logger.String("service", name),
				logger.Error(err))
		}

		rec := domain.ActionRecord{
			Service:  name,
			Action:   action,
			Status:   state,
			At:       d.Now().UTC(),
			RemoteIP: remoteIP,
		}
		if err := d.Journal.Record(ctx, rec); err != nil {
			d.Logger.Warn("failed to record service action", logger.Error(err))
		}

		writeJSON(w, http.StatusOK, serviceActionResponse{OK: true, Status: state})
	}
}
