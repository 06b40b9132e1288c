package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
)

// OrderDTO is the transport shape for one purchase record.
type OrderDTO struct {
	ID                uuid.UUID       `json:"id"`
	PartID            uuid.UUID       `json:"part_id"`
	OrderDate         time.Time       `json:"order_date"`
	PurchasedQuantity int             `json:"purchased_quantity"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	DeliveredDate     *time.Time      `json:"delivered_date,omitempty"`
	BudgetCategory    *string         `json:"budget_category,omitempty"`
	Pending           bool            `json:"pending"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func FromModel(o *models.OrderHistory) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:                o.ID,
		PartID:            o.PartID,
		OrderDate:         o.OrderDate,
		PurchasedQuantity: o.PurchasedQuantity,
		TotalCost:         o.TotalCost,
		TrackingNumber:    o.TrackingNumber,
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredDate:     o.DeliveredDate,
		BudgetCategory:    o.BudgetCategory,
		Pending:           o.Pending(),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func FromModels(orders []models.OrderHistory) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out
}

// RecordPurchaseInput holds the validated payload for a new purchase.
type RecordPurchaseInput struct {
	Quantity          int
	TotalCost         decimal.Decimal
	TrackingNumber    string
	OrderDate         *time.Time
	EstimatedDelivery *time.Time
	BudgetCategory    *string
}

// EditOrderInput holds optional mutation values for a pending order.
type EditOrderInput struct {
	Quantity          *int
	TotalCost         *decimal.Decimal
	TrackingNumber    *string
	EstimatedDelivery *time.Time
	BudgetCategory    *string
}

// PartOrderView pairs a part with the order rows the combined listing shows.
type PartOrderView struct {
	PartID      uuid.UUID       `json:"part_id"`
	Name        string          `json:"name"`
	ModelNumber string          `json:"model_number"`
	Room        string          `json:"room"`
	Count       int             `json:"count"`
	Threshold   int             `json:"threshold"`
	OrderLink   *string         `json:"order_link,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	Order       *OrderDTO       `json:"order,omitempty"`
}

// CombinedView groups the purchasing dashboard: parts that need ordering,
// purchases in flight, and what has already arrived. TotalCost covers
// delivered orders only.
type CombinedView struct {
	Pending   []PartOrderView `json:"pending"`
	Purchased []PartOrderView `json:"purchased"`
	Delivered []PartOrderView `json:"delivered"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
