package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// Part is an inventory item with a stable model number and current stock count.
type Part struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string            `gorm:"column:name;not null"`
	ModelNumber   string            `gorm:"column:model_number;not null;uniqueIndex"`
	Count         int               `gorm:"column:count;not null;default:0"`
	Cost          decimal.Decimal   `gorm:"column:cost;type:numeric(12,2);not null"`
	Room          string            `gorm:"column:room;not null"`
	Threshold     int               `gorm:"column:threshold;not null;default:5"`
	IsMisc        bool              `gorm:"column:is_misc;not null;default:false"`
	ApplianceType string            `gorm:"column:appliance_type"`
	OrderLink     *string           `gorm:"column:order_link"`
	OrderStatus   enums.OrderStatus `gorm:"column:order_status;not null;default:not_ordered"`
	Orders        []OrderHistory    `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// LowStock reports whether the current count is below the alert threshold.
func (p Part) LowStock() bool {
	return p.Count < p.Threshold
}
