package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
)

func buildOrdersService(t *testing.T, budgetCfg config.BudgetConfig) (Service, *gorm.DB, *audit.Repository) {
	t.Helper()

	conn := setupOrdersTestDB(t)
	client, err := db.NewWithConn(conn)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), parts.NewRepository(conn), client, audit.NewRepository(conn), nil, budgetCfg)
	require.NoError(t, err)
	return svc, conn, audit.NewRepository(conn)
}

func reloadPart(t *testing.T, conn *gorm.DB, id uuid.UUID) *models.Part {
	t.Helper()
	var part models.Part
	require.NoError(t, conn.First(&part, "id = ?", id).Error)
	return &part
}

func TestServicePurchaseThenDeliverRestocksPart(t *testing.T) {
	svc, conn, auditRepo := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	order, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:       2,
		TotalCost:      decimal.NewFromFloat(89.90),
		TrackingNumber: "1Z554",
	})
	require.NoError(t, err)
	assert.True(t, order.Pending)
	assert.Equal(t, enums.OrderStatusPurchased, reloadPart(t, conn, part.ID).OrderStatus)

	delivered, err := svc.MarkDelivered(context.Background(), actor, order.ID)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredDate)
	assert.False(t, delivered.Pending)

	after := reloadPart(t, conn, part.ID)
	assert.Equal(t, 2, after.Count)
	assert.Equal(t, enums.OrderStatusNotOrdered, after.OrderStatus)

	entries, err := auditRepo.List(context.Background(), audit.ListFilter{UserID: &actor})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	actions := []enums.AuditAction{entries[0].Action, entries[1].Action}
	assert.Contains(t, actions, enums.AuditActionOrderPurchase)
	assert.Contains(t, actions, enums.AuditActionOrderDeliver)
}

func TestServiceMarkDeliveredTwiceConflicts(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 1)

	order, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  3,
		TotalCost: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), actor, order.ID)
	require.NoError(t, err)
	require.Equal(t, 4, reloadPart(t, conn, part.ID).Count)

	_, err = svc.MarkDelivered(context.Background(), actor, order.ID)
	assertOrderCode(t, err, pkgerrors.CodeStateConflict)
	assert.Equal(t, 4, reloadPart(t, conn, part.ID).Count, "count must not change on a repeated delivery")
}

func TestServicePartStaysPurchasedWhileOrdersRemain(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	first, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), actor, first.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPurchased, reloadPart(t, conn, part.ID).OrderStatus)
}

func TestServiceRecordPurchaseValidation(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	_, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  0,
		TotalCost: decimal.NewFromInt(10),
	})
	assertOrderCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(-1),
	})
	assertOrderCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.RecordPurchase(context.Background(), actor, uuid.New(), RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(10),
	})
	assertOrderCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceRecordPurchaseChecksCategory(t *testing.T) {
	cfg := config.BudgetConfig{Categories: []string{"Plumbing", "Electrical"}}
	svc, conn, _ := buildOrdersService(t, cfg)
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	category := "Roofing"
	_, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:       1,
		TotalCost:      decimal.NewFromInt(5),
		BudgetCategory: &category,
	})
	assertOrderCode(t, err, pkgerrors.CodeValidation)

	category = "plumbing"
	order, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:       1,
		TotalCost:      decimal.NewFromInt(5),
		BudgetCategory: &category,
	})
	require.NoError(t, err)
	require.NotNil(t, order.BudgetCategory)
	assert.Equal(t, "plumbing", *order.BudgetCategory)
}

func TestServiceEditPendingOrder(t *testing.T) {
	svc, conn, auditRepo := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	order, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:       2,
		TotalCost:      decimal.NewFromInt(20),
		TrackingNumber: "old",
	})
	require.NoError(t, err)

	qty := 5
	tracking := "1Z777"
	edited, err := svc.EditPendingOrder(context.Background(), actor, order.ID, EditOrderInput{
		Quantity:       &qty,
		TrackingNumber: &tracking,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, edited.PurchasedQuantity)
	assert.Equal(t, "1Z777", edited.TrackingNumber)

	entries, err := auditRepo.List(context.Background(), audit.ListFilter{UserID: &actor})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, []enums.AuditAction{entries[0].Action, entries[1].Action}, enums.AuditActionOrderEdit)
}

func TestServiceEditDeliveredOrderConflicts(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	order, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = svc.MarkDelivered(context.Background(), actor, order.ID)
	require.NoError(t, err)

	qty := 9
	_, err = svc.EditPendingOrder(context.Background(), actor, order.ID, EditOrderInput{Quantity: &qty})
	assertOrderCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceCombinedGroupsParts(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()

	link := "https://example.com/valve"
	lowStock := &models.Part{
		ID:          uuid.New(),
		Name:        "Fill Valve",
		ModelNumber: "FV-" + uuid.NewString()[:8],
		Count:       1,
		Cost:        decimal.NewFromInt(8),
		Room:        "Bathroom",
		Threshold:   5,
		OrderLink:   &link,
	}
	require.NoError(t, conn.Create(lowStock).Error)

	baseline, err := svc.Combined(context.Background())
	require.NoError(t, err)

	purchased := seedOrderPart(t, conn, 0)
	order, err := svc.RecordPurchase(context.Background(), actor, purchased.ID, RecordPurchaseInput{
		Quantity:  2,
		TotalCost: decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	view, err := svc.Combined(context.Background())
	require.NoError(t, err)

	assert.True(t, containsPartView(view.Pending, lowStock.ID))
	assert.False(t, containsPartView(view.Pending, purchased.ID))
	assert.True(t, containsPartView(view.Purchased, purchased.ID))
	// undelivered purchases do not count toward the spend total
	assert.True(t, view.TotalCost.Equal(baseline.TotalCost))

	_, err = svc.MarkDelivered(context.Background(), actor, order.ID)
	require.NoError(t, err)

	view, err = svc.Combined(context.Background())
	require.NoError(t, err)
	assert.False(t, containsPartView(view.Purchased, purchased.ID))
	assert.True(t, containsPartView(view.Delivered, purchased.ID))
	assert.True(t, view.TotalCost.Equal(baseline.TotalCost.Add(decimal.NewFromInt(25))))
}

func TestServiceListForPart(t *testing.T) {
	svc, conn, _ := buildOrdersService(t, config.BudgetConfig{})
	actor := uuid.New()
	part := seedOrderPart(t, conn, 0)

	_, err := svc.RecordPurchase(context.Background(), actor, part.ID, RecordPurchaseInput{
		Quantity:  1,
		TotalCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	history, err := svc.ListForPart(context.Background(), part.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = svc.ListForPart(context.Background(), uuid.New())
	assertOrderCode(t, err, pkgerrors.CodeNotFound)
}

func containsPartView(views []PartOrderView, partID uuid.UUID) bool {
	for i := range views {
		if views[i].PartID == partID {
			return true
		}
	}
	return false
}

func assertOrderCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}
