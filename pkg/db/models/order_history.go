package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHistory records one purchase transaction against a part. An entry is
// pending until DeliveredDate is set; delivery is one-directional and happens
// at most once.
type OrderHistory struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PartID            uuid.UUID       `gorm:"column:part_id;type:uuid;not null;index"`
	OrderDate         time.Time       `gorm:"column:order_date;type:date;not null"`
	PurchasedQuantity int             `gorm:"column:purchased_quantity;not null"`
	TotalCost         decimal.Decimal `gorm:"column:total_cost;type:numeric(12,2);not null"`
	TrackingNumber    string          `gorm:"column:tracking_number"`
	EstimatedDelivery *time.Time      `gorm:"column:estimated_delivery;type:date"`
	DeliveredDate     *time.Time      `gorm:"column:delivered_date;type:date"`
	BudgetCategory    *string         `gorm:"column:budget_category"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Pending reports whether the order has not been delivered yet.
func (o OrderHistory) Pending() bool {
	return o.DeliveredDate == nil
}
