package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// EntryDTO is the warden-facing view of one audit record.
type EntryDTO struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	Action     enums.AuditAction `json:"action"`
	EntityType string            `json:"entity_type"`
	EntityID   uuid.UUID         `json:"entity_id"`
	Detail     string            `json:"detail,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func FromModel(e *models.AuditEntry) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt,
	}
}

func FromModels(entries []models.AuditEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *FromModel(&entries[i]))
	}
	return out
}
