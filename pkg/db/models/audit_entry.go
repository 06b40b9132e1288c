package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// AuditEntry is an append-only record of a mutating operation. Entries are
// written synchronously in the same transaction as the mutation and read back
// only by the warden-only listing view.
type AuditEntry struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Action     enums.AuditAction `gorm:"column:action;not null"`
	EntityType string            `gorm:"column:entity_type;not null"`
	EntityID   uuid.UUID         `gorm:"column:entity_id;type:uuid;not null"`
	Detail     string            `gorm:"column:detail"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
