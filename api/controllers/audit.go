package controllers

import (
	"net/http"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	"github.com/RoyceColton/Maintenance-Inventory-System/api/validators"
	auditsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// ListAuditEntries serves the audit trail. Mounted warden-only.
func ListAuditEntries(repo *auditsvc.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit repository unavailable"))
			return
		}

		var filter auditsvc.ListFilter
		if raw := validators.ParseQueryString(r, "user_id", 64); raw != "" {
			userID, err := validators.ParsePathUUID(raw, "user_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.UserID = &userID
		}
		if raw := validators.ParseQueryString(r, "action", 64); raw != "" {
			action := enums.AuditAction(raw)
			filter.Action = &action
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Limit = limit

		entries, err := repo.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list audit entries"))
			return
		}

		responses.WriteSuccess(w, auditsvc.FromModels(entries))
	}
}
