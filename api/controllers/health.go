package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/redis"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/sheets"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MIS-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every collaborator and aggregates the failures. A nil
// collaborator is skipped so optional pieces (the budget sheet) don't gate
// readiness when unconfigured.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, sheetsP sheets.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MIS-Env", cfg.App.Env)

		var errs error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db ping"))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
			}
		}
		if sheetsP != nil {
			if err := sheetsP.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sheets ping"))
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
