package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
)

// Repository runs read-only aggregation queries over delivered orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DeliveredBetween returns delivered orders with delivered_date in [from, to).
func (r *Repository) DeliveredBetween(ctx context.Context, from, to time.Time) ([]models.OrderHistory, error) {
	var orders []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("delivered_date IS NOT NULL AND delivered_date >= ? AND delivered_date < ?", from, to).
		Order("delivered_date ASC").
		Find(&orders).Error
	return orders, err
}
