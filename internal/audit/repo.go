package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// Repository persists and reads the append-only audit trail.
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

// Record appends one entry. Callers inside a transaction must bind via WithTx
// so the entry commits or rolls back with the mutation it describes.
func (r *Repository) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListFilter narrows the audit listing.
type ListFilter struct {
	UserID *uuid.UUID
	Action *enums.AuditAction
	Limit  int
}

// List returns entries newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.AuditEntry, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditEntry{}).Order("created_at DESC")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q = q.Limit(limit)

	var entries []models.AuditEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
