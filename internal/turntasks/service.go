package turntasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
)

// Service exposes turn checklist operations.
type Service interface {
	CreateTask(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*TaskDTO, error)
	GetTask(ctx context.Context, id uuid.UUID) (*TaskDTO, error)
	ListTasks(ctx context.Context, filter ListFilter) ([]TaskDTO, error)
	UpdateTask(ctx context.Context, actorID, id uuid.UUID, input UpdateTaskInput) (*TaskDTO, error)
	CompleteItem(ctx context.Context, actorID, id uuid.UUID, item string) (*TaskDTO, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	audit    *audit.Repository
}

// NewService constructs a turn task service instance.
func NewService(repo *Repository, dbClient *db.Client, auditRepo *audit.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("turn task repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if auditRepo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo, dbClient: dbClient, audit: auditRepo}, nil
}

// CreateTask opens a new checklist for a unit.
func (s *service) CreateTask(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*TaskDTO, error) {
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit is required")
	}
	items, err := normalizeItems(input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one checklist item is required")
	}

	task := &models.TurnTask{
		Unit:      unit,
		Status:    enums.TurnTaskStatusOpen,
		Items:     items,
		DoneItems: pq.StringArray{},
		DueDate:   input.DueDate,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, task); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert turn task")
		}
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionTurnTaskCreate,
			EntityType: "turn_task",
			EntityID:   task.ID,
			Detail:     fmt.Sprintf("unit=%s items=%d", unit, len(items)),
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create turn task")
	}
	return FromModel(task), nil
}

// GetTask loads one checklist.
func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*TaskDTO, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "turn task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load turn task")
	}
	return FromModel(task), nil
}

// ListTasks returns checklists matching the filter.
func (s *service) ListTasks(ctx context.Context, filter ListFilter) ([]TaskDTO, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list turn tasks")
	}
	return FromModels(tasks), nil
}

// UpdateTask applies partial edits. Replacing the item list drops completed
// entries that no longer exist, then the status is recomputed.
func (s *service) UpdateTask(ctx context.Context, actorID, id uuid.UUID, input UpdateTaskInput) (*TaskDTO, error) {
	var updated *models.TurnTask
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		task, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "turn task not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load turn task")
		}

		if input.Unit != nil {
			unit := strings.TrimSpace(*input.Unit)
			if unit == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "unit cannot be empty")
			}
			task.Unit = unit
		}
		if input.Items != nil {
			items, err := normalizeItems(*input.Items)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "at least one checklist item is required")
			}
			task.Items = items
			task.DoneItems = intersect(task.DoneItems, items)
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.Status != nil {
			status, err := enums.ParseTurnTaskStatus(*input.Status)
			if err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown status")
			}
			task.Status = status
		} else {
			task.Status = statusFor(task)
		}

		if err := txRepo.Save(ctx, task); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save turn task")
		}

		updated = task
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionTurnTaskUpdate,
			EntityType: "turn_task",
			EntityID:   task.ID,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update turn task")
	}
	return FromModel(updated), nil
}

// CompleteItem checks off one checklist item and advances the task status.
func (s *service) CompleteItem(ctx context.Context, actorID, id uuid.UUID, item string) (*TaskDTO, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is required")
	}

	var updated *models.TurnTask
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		task, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "turn task not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load turn task")
		}

		if !contains(task.Items, item) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item is not on the checklist")
		}
		if contains(task.DoneItems, item) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "item already completed")
		}

		task.DoneItems = append(task.DoneItems, item)
		task.Status = statusFor(task)

		if err := txRepo.Save(ctx, task); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save turn task")
		}

		updated = task
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionTurnTaskUpdate,
			EntityType: "turn_task",
			EntityID:   task.ID,
			Detail:     "completed " + item,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete item")
	}
	return FromModel(updated), nil
}

func normalizeItems(raw []string) (pq.StringArray, error) {
	items := make(pq.StringArray, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate checklist item: "+item)
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func statusFor(task *models.TurnTask) enums.TurnTaskStatus {
	switch {
	case len(task.DoneItems) == 0:
		return enums.TurnTaskStatusOpen
	case len(task.DoneItems) >= len(task.Items):
		return enums.TurnTaskStatusDone
	default:
		return enums.TurnTaskStatusInProgress
	}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func intersect(done, items pq.StringArray) pq.StringArray {
	kept := make(pq.StringArray, 0, len(done))
	for _, item := range done {
		if contains(items, item) {
			kept = append(kept, item)
		}
	}
	return kept
}
