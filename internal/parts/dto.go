package parts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
)

// PartDTO is the transport shape for a part.
type PartDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	ModelNumber   string            `json:"model_number"`
	Count         int               `json:"count"`
	Cost          decimal.Decimal   `json:"cost"`
	Room          string            `json:"room"`
	Threshold     int               `json:"threshold"`
	IsMisc        bool              `json:"is_misc"`
	ApplianceType string            `json:"appliance_type,omitempty"`
	OrderLink     *string           `json:"order_link,omitempty"`
	OrderStatus   enums.OrderStatus `json:"order_status"`
	LowStock      bool              `json:"low_stock"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func FromModel(p *models.Part) *PartDTO {
	if p == nil {
		return nil
	}
	return &PartDTO{
		ID:            p.ID,
		Name:          p.Name,
		ModelNumber:   p.ModelNumber,
		Count:         p.Count,
		Cost:          p.Cost,
		Room:          p.Room,
		Threshold:     p.Threshold,
		IsMisc:        p.IsMisc,
		ApplianceType: p.ApplianceType,
		OrderLink:     p.OrderLink,
		OrderStatus:   p.OrderStatus,
		LowStock:      p.LowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromModels(parts []models.Part) []PartDTO {
	out := make([]PartDTO, 0, len(parts))
	for i := range parts {
		out = append(out, *FromModel(&parts[i]))
	}
	return out
}

// CreatePartInput holds the validated payload to add a part.
type CreatePartInput struct {
	Name          string
	ModelNumber   string
	Count         int
	Cost          decimal.Decimal
	Room          string
	Threshold     *int
	IsMisc        bool
	ApplianceType string
	OrderLink     *string
}

// UpdatePartInput holds optional mutation values for a part.
type UpdatePartInput struct {
	Name          *string
	ModelNumber   *string
	Cost          *decimal.Decimal
	Room          *string
	Threshold     *int
	IsMisc        *bool
	ApplianceType *string
	OrderLink     *string
}

// ListFilter narrows the part listing.
type ListFilter struct {
	Search    string
	Room      string
	Appliance string
}
