package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	"github.com/RoyceColton/Maintenance-Inventory-System/api/validators"
	tasksvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/turntasks"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// ListTurnTasks handles the checklist listing.
func ListTurnTasks(svc tasksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "turn task service unavailable"))
			return
		}

		var filter tasksvc.ListFilter
		if raw := validators.ParseQueryString(r, "status", 50); raw != "" {
			status, err := enums.ParseTurnTaskStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filter.Status = &status
		}
		if unit := validators.ParseQueryString(r, "unit", 100); unit != "" {
			filter.Unit = &unit
		}

		tasks, err := svc.ListTasks(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tasks)
	}
}

// CreateTurnTask handles opening a new checklist.
func CreateTurnTask(svc tasksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "turn task service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTurnTaskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.CreateTask(r.Context(), actorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

// UpdateTurnTask handles partial checklist edits.
func UpdateTurnTask(svc tasksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "turn task service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		taskID, err := validators.ParsePathUUID(chi.URLParam(r, "taskID"), "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTurnTaskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.UpdateTask(r.Context(), actorID, taskID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, task)
	}
}

// CompleteTurnTaskItem handles checking off one checklist item.
func CompleteTurnTaskItem(svc tasksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "turn task service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		taskID, err := validators.ParsePathUUID(chi.URLParam(r, "taskID"), "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload completeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.CompleteItem(r.Context(), actorID, taskID, payload.Item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, task)
	}
}

type createTurnTaskRequest struct {
	Unit    string   `json:"unit" validate:"required"`
	Items   []string `json:"items" validate:"required,min=1,dive,required"`
	DueDate *string  `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (p createTurnTaskRequest) toInput() (tasksvc.CreateTaskInput, error) {
	input := tasksvc.CreateTaskInput{
		Unit:  validators.SanitizeString(p.Unit, maxUnitLen),
		Items: p.Items,
	}
	if p.DueDate != nil {
		due, err := validators.ParseDate(*p.DueDate, "due_date")
		if err != nil {
			return tasksvc.CreateTaskInput{}, err
		}
		input.DueDate = &due
	}
	return input, nil
}

type updateTurnTaskRequest struct {
	Unit    *string   `json:"unit,omitempty"`
	Status  *string   `json:"status,omitempty"`
	Items   *[]string `json:"items,omitempty"`
	DueDate *string   `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (p updateTurnTaskRequest) toInput() (tasksvc.UpdateTaskInput, error) {
	input := tasksvc.UpdateTaskInput{
		Unit:   p.Unit,
		Status: p.Status,
		Items:  p.Items,
	}
	if p.DueDate != nil {
		due, err := validators.ParseDate(*p.DueDate, "due_date")
		if err != nil {
			return tasksvc.UpdateTaskInput{}, err
		}
		input.DueDate = &due
	}
	return input, nil
}

type completeItemRequest struct {
	Item string `json:"item" validate:"required"`
}
