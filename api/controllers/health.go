package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/oyehq/oye-backend/api/responses"
	"github.com/oyehq/oye-backend/pkg/config"
	"github.com/oyehq/oye-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady verifies the backing stores answer before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = checkDependency(ctx, db)
		checks["redis"] = checkDependency(ctx, cache)
		for name, status := range checks {
			if status != "ok" {
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "dependency", name), "health.dependency_down")
				}
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"env":    cfg.App.Env,
			"checks": checks,
		})
	}
}

func checkDependency(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
