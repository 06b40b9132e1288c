package parts

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// Repository wires together part persistence helpers.
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

// Create inserts the part.
func (r *Repository) Create(ctx context.Context, part *models.Part) (*models.Part, error) {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(part).Error; err != nil {
		return nil, err
	}
	return part, nil
}

// FindByID loads the part without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	var part models.Part
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// List returns parts matching the filter, ordered by room then name.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Part, error) {
	q := r.db.WithContext(ctx).Model(&models.Part{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(model_number) LIKE ?", like, like)
	}
	if filter.Room != "" {
		q = q.Where("room = ?", filter.Room)
	}
	if filter.Appliance != "" {
		q = q.Where("appliance_type = ?", filter.Appliance)
	}

	var parts []models.Part
	if err := q.Order("room ASC, name ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// Save persists the full part row.
func (r *Repository) Save(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// UpdateCount writes just the stock count.
func (r *Repository) UpdateCount(ctx context.Context, id uuid.UUID, count int) error {
	return r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("id = ?", id).
		UpdateColumn("count", count).Error
}

// UpdateOrderStatus writes just the order status.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("id = ?", id).
		UpdateColumn("order_status", status).Error
}

// Delete removes the part. Owned order history rows go with it through the
// FK cascade; on databases without enforced FKs the explicit delete below
// keeps the behavior identical.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("part_id = ?", id).Delete(&models.OrderHistory{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Part{}, "id = ?", id).Error
}
