package turntasks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
)

// Repository wires together turn task persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the task row.
func (r *Repository) Create(ctx context.Context, task *models.TurnTask) (*models.TurnTask, error) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// FindByID loads one task.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TurnTask, error) {
	var task models.TurnTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns tasks, open work first, newest within each status.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.TurnTask, error) {
	query := r.db.WithContext(ctx).Model(&models.TurnTask{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Unit != nil && *filter.Unit != "" {
		query = query.Where("unit = ?", *filter.Unit)
	}

	var tasks []models.TurnTask
	err := query.
		Order("CASE status WHEN 'open' THEN 0 WHEN 'in_progress' THEN 1 ELSE 2 END").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Save persists the full task row.
func (r *Repository) Save(ctx context.Context, task *models.TurnTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}
