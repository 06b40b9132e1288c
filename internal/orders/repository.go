package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
)

// Repository wires together order history persistence helpers.
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

// Create inserts the order row.
func (r *Repository) Create(ctx context.Context, order *models.OrderHistory) (*models.OrderHistory, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads one order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderHistory, error) {
	var order models.OrderHistory
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Save persists the full order row.
func (r *Repository) Save(ctx context.Context, order *models.OrderHistory) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// CountPendingForPart reports how many undelivered orders the part still has.
func (r *Repository) CountPendingForPart(ctx context.Context, partID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderHistory{}).
		Where("part_id = ? AND delivered_date IS NULL", partID).
		Count(&n).Error
	return n, err
}

// ListPending returns undelivered orders, oldest first.
func (r *Repository) ListPending(ctx context.Context) ([]models.OrderHistory, error) {
	var pending []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("delivered_date IS NULL").
		Order("order_date ASC, created_at ASC").
		Find(&pending).Error
	return pending, err
}

// ListDelivered returns delivered orders, newest delivery first.
func (r *Repository) ListDelivered(ctx context.Context) ([]models.OrderHistory, error) {
	var delivered []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("delivered_date IS NOT NULL").
		Order("delivered_date DESC, created_at DESC").
		Find(&delivered).Error
	return delivered, err
}

// ListForPart returns the full history for one part, newest first.
func (r *Repository) ListForPart(ctx context.Context, partID uuid.UUID) ([]models.OrderHistory, error) {
	var history []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("part_id = ?", partID).
		Order("order_date DESC, created_at DESC").
		Find(&history).Error
	return history, err
}
