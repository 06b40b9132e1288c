package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Service exposes the purchase lifecycle operations.
type Service interface {
	RecordPurchase(ctx context.Context, actorID, partID uuid.UUID, input RecordPurchaseInput) (*OrderDTO, error)
	MarkDelivered(ctx context.Context, actorID, orderID uuid.UUID) (*OrderDTO, error)
	EditPendingOrder(ctx context.Context, actorID, orderID uuid.UUID, input EditOrderInput) (*OrderDTO, error)
	Combined(ctx context.Context) (*CombinedView, error)
	ListForPart(ctx context.Context, partID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo      *Repository
	partsRepo *parts.Repository
	dbClient  *db.Client
	audit     *audit.Repository
	metrics   *metrics.InventoryMetrics
	budgetCfg config.BudgetConfig
}

// NewService constructs an orders service instance.
func NewService(repo *Repository, partsRepo *parts.Repository, dbClient *db.Client, auditRepo *audit.Repository, inv *metrics.InventoryMetrics, budgetCfg config.BudgetConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if partsRepo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if auditRepo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{
		repo:      repo,
		partsRepo: partsRepo,
		dbClient:  dbClient,
		audit:     auditRepo,
		metrics:   inv,
		budgetCfg: budgetCfg,
	}, nil
}

// RecordPurchase creates a pending order and flips the part to purchased.
func (s *service) RecordPurchase(ctx context.Context, actorID, partID uuid.UUID, input RecordPurchaseInput) (*OrderDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchased_quantity must be positive")
	}
	if input.TotalCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_cost cannot be negative")
	}
	category, err := s.normalizeCategory(input.BudgetCategory)
	if err != nil {
		return nil, err
	}

	orderDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.OrderHistory{
		PartID:            partID,
		OrderDate:         orderDate,
		PurchasedQuantity: input.Quantity,
		TotalCost:         input.TotalCost,
		TrackingNumber:    strings.TrimSpace(input.TrackingNumber),
		EstimatedDelivery: input.EstimatedDelivery,
		BudgetCategory:    category,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txParts := s.partsRepo.WithTx(tx)
		part, err := txParts.FindByID(ctx, partID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
		}

		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		if err := txParts.UpdateOrderStatus(ctx, part.ID, enums.OrderStatusPurchased); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
		}

		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionOrderPurchase,
			EntityType: "order",
			EntityID:   order.ID,
			Detail:     fmt.Sprintf("part=%s qty=%d", part.ModelNumber, input.Quantity),
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record purchase")
	}

	s.metrics.IncPurchase()
	return FromModel(order), nil
}

// MarkDelivered receives a pending order: sets the delivery date, adds the
// quantity to stock, and resets the part once nothing else is in flight.
// Delivery happens at most once per order.
func (s *service) MarkDelivered(ctx context.Context, actorID, orderID uuid.UUID) (*OrderDTO, error) {
	var delivered *models.OrderHistory
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txParts := s.partsRepo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}

		if !order.Pending() {
			s.metrics.IncStateConflict("already_delivered")
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already delivered")
		}

		part, err := txParts.FindByID(ctx, order.PartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		order.DeliveredDate = &today
		if err := txRepo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save order")
		}

		if err := txParts.UpdateCount(ctx, part.ID, part.Count+order.PurchasedQuantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update count")
		}

		remaining, err := txRepo.CountPendingForPart(ctx, part.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count pending")
		}
		if remaining == 0 {
			if err := txParts.UpdateOrderStatus(ctx, part.ID, enums.OrderStatusNotOrdered); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
			}
		}

		delivered = order
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionOrderDeliver,
			EntityType: "order",
			EntityID:   order.ID,
			Detail:     fmt.Sprintf("part=%s qty=%d", part.ModelNumber, order.PurchasedQuantity),
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark delivered")
	}

	s.metrics.IncDelivery()
	return FromModel(delivered), nil
}

// EditPendingOrder changes purchase details while the order is still in flight.
func (s *service) EditPendingOrder(ctx context.Context, actorID, orderID uuid.UUID, input EditOrderInput) (*OrderDTO, error) {
	var edited *models.OrderHistory
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}

		if !order.Pending() {
			s.metrics.IncStateConflict("edit_after_delivery")
			return pkgerrors.New(pkgerrors.CodeStateConflict, "delivered orders cannot be edited")
		}

		if input.Quantity != nil {
			if *input.Quantity <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "purchased_quantity must be positive")
			}
			order.PurchasedQuantity = *input.Quantity
		}
		if input.TotalCost != nil {
			if input.TotalCost.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "total_cost cannot be negative")
			}
			order.TotalCost = *input.TotalCost
		}
		if input.TrackingNumber != nil {
			order.TrackingNumber = strings.TrimSpace(*input.TrackingNumber)
		}
		if input.EstimatedDelivery != nil {
			order.EstimatedDelivery = input.EstimatedDelivery
		}
		if input.BudgetCategory != nil {
			category, err := s.normalizeCategory(input.BudgetCategory)
			if err != nil {
				return err
			}
			order.BudgetCategory = category
		}

		if err := txRepo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save order")
		}

		edited = order
		return s.audit.WithTx(tx).Record(ctx, &models.AuditEntry{
			UserID:     actorID,
			Action:     enums.AuditActionOrderEdit,
			EntityType: "order",
			EntityID:   order.ID,
		})
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "edit order")
	}

	return FromModel(edited), nil
}

// Combined builds the purchasing dashboard view.
func (s *service) Combined(ctx context.Context) (*CombinedView, error) {
	allParts, err := s.partsRepo.List(ctx, parts.ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list parts")
	}
	byID := make(map[uuid.UUID]*models.Part, len(allParts))
	for i := range allParts {
		byID[allParts[i].ID] = &allParts[i]
	}

	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list pending")
	}
	deliveredOrders, err := s.repo.ListDelivered(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list delivered")
	}

	view := &CombinedView{
		Pending:   []PartOrderView{},
		Purchased: []PartOrderView{},
		Delivered: []PartOrderView{},
		TotalCost: decimal.Zero,
	}

	for i := range allParts {
		p := &allParts[i]
		if p.LowStock() && p.OrderStatus == enums.OrderStatusNotOrdered && p.OrderLink != nil && *p.OrderLink != "" {
			view.Pending = append(view.Pending, partView(p, nil))
		}
	}

	for i := range pending {
		o := &pending[i]
		part, ok := byID[o.PartID]
		if !ok {
			continue
		}
		view.Purchased = append(view.Purchased, partView(part, o))
	}

	for i := range deliveredOrders {
		o := &deliveredOrders[i]
		part, ok := byID[o.PartID]
		if !ok {
			continue
		}
		view.Delivered = append(view.Delivered, partView(part, o))
		view.TotalCost = view.TotalCost.Add(o.TotalCost)
	}

	return view, nil
}

// ListForPart returns the order history of one part.
func (s *service) ListForPart(ctx context.Context, partID uuid.UUID) ([]OrderDTO, error) {
	if _, err := s.partsRepo.FindByID(ctx, partID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load part")
	}
	history, err := s.repo.ListForPart(ctx, partID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return FromModels(history), nil
}

func (s *service) normalizeCategory(category *string) (*string, error) {
	if category == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*category)
	if trimmed == "" {
		return nil, nil
	}
	if !s.budgetCfg.CategoryTrackingEnabled() {
		return nil, nil
	}
	if !s.budgetCfg.IsKnownCategory(trimmed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown budget category")
	}
	return &trimmed, nil
}

func partView(p *models.Part, o *models.OrderHistory) PartOrderView {
	return PartOrderView{
		PartID:      p.ID,
		Name:        p.Name,
		ModelNumber: p.ModelNumber,
		Room:        p.Room,
		Count:       p.Count,
		Threshold:   p.Threshold,
		OrderLink:   p.OrderLink,
		Cost:        p.Cost,
		Order:       FromModel(o),
	}
}
