package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// TurnTask tracks a unit-turn checklist: the work items to complete when a
// unit flips between tenants, and which of them are already done.
type TurnTask struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Unit      string               `gorm:"column:unit;not null"`
	Status    enums.TurnTaskStatus `gorm:"column:status;not null;default:open"`
	Items     pq.StringArray       `gorm:"column:items;type:text[];not null;default:ARRAY[]::text[]"`
	DoneItems pq.StringArray       `gorm:"column:done_items;type:text[];not null;default:ARRAY[]::text[]"`
	DueDate   *time.Time           `gorm:"column:due_date;type:date"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
