package reports

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

type fakeBudgetSource struct {
	overall    decimal.Decimal
	categories map[string]decimal.Decimal
	err        error
	overallErr error
}

func (f *fakeBudgetSource) OverallBudget(ctx context.Context) (decimal.Decimal, error) {
	if f.overallErr != nil {
		return decimal.Zero, f.overallErr
	}
	return f.overall, f.err
}

func (f *fakeBudgetSource) CategoryBudgets(ctx context.Context, quarter int) (map[string]decimal.Decimal, error) {
	return f.categories, f.err
}

// Each test gets its own named in-memory database: the aggregate assertions
// below would otherwise see rows seeded by sibling tests.
func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:reports_" + uuid.NewString()[:8] + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	stmts := []string{`
CREATE TABLE IF NOT EXISTS parts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  model_number TEXT NOT NULL UNIQUE,
  count INTEGER NOT NULL DEFAULT 0,
  cost TEXT NOT NULL DEFAULT '0',
  room TEXT NOT NULL DEFAULT '',
  threshold INTEGER NOT NULL DEFAULT 5,
  is_misc INTEGER NOT NULL DEFAULT 0,
  appliance_type TEXT NOT NULL DEFAULT '',
  order_link TEXT,
  order_status TEXT NOT NULL DEFAULT 'not_ordered',
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_histories (
  id TEXT PRIMARY KEY,
  part_id TEXT NOT NULL,
  order_date DATE NOT NULL,
  purchased_quantity INTEGER NOT NULL,
  total_cost TEXT NOT NULL DEFAULT '0',
  tracking_number TEXT NOT NULL DEFAULT '',
  estimated_delivery DATE,
  delivered_date DATE,
  budget_category TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func buildReportsService(t *testing.T, conn *gorm.DB, budget *fakeBudgetSource, now time.Time) Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	var svc Service
	var err error
	if budget == nil {
		svc, err = NewService(NewRepository(conn), parts.NewRepository(conn), nil, logg)
	} else {
		svc, err = NewService(NewRepository(conn), parts.NewRepository(conn), budget, logg)
	}
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func seedReportPart(t *testing.T, conn *gorm.DB, name string) *models.Part {
	t.Helper()
	part := &models.Part{
		ID:          uuid.New(),
		Name:        name,
		ModelNumber: "RP-" + uuid.NewString()[:8],
		Cost:        decimal.NewFromInt(5),
		Room:        "Kitchen",
		Threshold:   5,
	}
	require.NoError(t, conn.Create(part).Error)
	return part
}

func seedDelivered(t *testing.T, conn *gorm.DB, partID uuid.UUID, delivered time.Time, qty int, cost decimal.Decimal, category *string) {
	t.Helper()
	order := &models.OrderHistory{
		ID:                uuid.New(),
		PartID:            partID,
		OrderDate:         delivered.AddDate(0, 0, -3),
		PurchasedQuantity: qty,
		TotalCost:         cost,
		DeliveredDate:     &delivered,
		BudgetCategory:    category,
	}
	require.NoError(t, conn.Create(order).Error)
}

func TestMonthlyHistoryBucketsByDeliveryMonth(t *testing.T) {
	conn := setupReportsTestDB(t)
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	svc := buildReportsService(t, conn, nil, now)
	part := seedReportPart(t, conn, "Flapper")

	seedDelivered(t, conn, part.ID, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(40), nil)
	seedDelivered(t, conn, part.ID, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(10), nil)
	seedDelivered(t, conn, part.ID, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(25), nil)
	// Outside the requested year.
	seedDelivered(t, conn, part.ID, time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(99), nil)

	history, err := svc.MonthlyHistory(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, history.Months, 12)

	feb := history.Months[1]
	assert.Equal(t, 2, feb.Orders)
	assert.True(t, feb.TotalCost.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, history.Months[6].Orders)
	assert.True(t, history.TotalCost.Equal(decimal.NewFromInt(75)))

	monthSum := decimal.Zero
	for _, m := range history.Months {
		monthSum = monthSum.Add(m.TotalCost)
	}
	assert.True(t, monthSum.Equal(history.TotalCost))
}

func TestMonthlyHistoryRejectsBadYear(t *testing.T) {
	conn := setupReportsTestDB(t)
	svc := buildReportsService(t, conn, nil, time.Now().UTC())

	_, err := svc.MonthlyHistory(context.Background(), 150)
	assertReportCode(t, err, pkgerrors.CodeValidation)
}

func TestBudgetByCategoryComputesSpendAndOverrun(t *testing.T) {
	conn := setupReportsTestDB(t)
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	budget := &fakeBudgetSource{
		overall: decimal.NewFromInt(1000),
		categories: map[string]decimal.Decimal{
			"plumbing":   decimal.NewFromInt(100),
			"electrical": decimal.NewFromInt(200),
			"hvac":       decimal.Zero,
		},
	}
	svc := buildReportsService(t, conn, budget, now)
	part := seedReportPart(t, conn, "Union")

	plumbing := "plumbing"
	hvac := "hvac"
	seedDelivered(t, conn, part.ID, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(150), &plumbing)
	seedDelivered(t, conn, part.ID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(30), &hvac)
	// Outside Q1.
	seedDelivered(t, conn, part.ID, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(500), &plumbing)

	report, err := svc.BudgetByCategory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, report.Categories, 3)

	byName := make(map[string]CategoryBudgetDTO)
	for _, c := range report.Categories {
		byName[c.Category] = c
	}

	p := byName["plumbing"]
	assert.True(t, p.Spent.Equal(decimal.NewFromInt(150)))
	assert.True(t, p.PercentSpent.Equal(decimal.NewFromInt(150)))
	assert.True(t, p.OverBudget.Equal(decimal.NewFromInt(50)))

	e := byName["electrical"]
	assert.True(t, e.Spent.IsZero())
	assert.True(t, e.PercentSpent.IsZero())
	assert.True(t, e.OverBudget.IsZero())

	h := byName["hvac"]
	assert.True(t, h.Spent.Equal(decimal.NewFromInt(30)))
	assert.True(t, h.PercentSpent.IsZero(), "zero budget must yield zero percent")
	assert.True(t, h.OverBudget.Equal(decimal.NewFromInt(30)))

	require.NotNil(t, report.Overall)
	assert.True(t, report.Overall.Budget.Equal(decimal.NewFromInt(1000)))
}

func TestBudgetByCategoryRejectsBadQuarter(t *testing.T) {
	conn := setupReportsTestDB(t)
	svc := buildReportsService(t, conn, &fakeBudgetSource{}, time.Now().UTC())

	for _, q := range []int{0, 5, -1} {
		_, err := svc.BudgetByCategory(context.Background(), q)
		assertReportCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestBudgetReportsWithoutSourceFailDependency(t *testing.T) {
	conn := setupReportsTestDB(t)
	svc := buildReportsService(t, conn, nil, time.Now().UTC())

	_, err := svc.BudgetByCategory(context.Background(), 1)
	assertReportCode(t, err, pkgerrors.CodeDependency)

	_, err = svc.OverallBudget(context.Background())
	assertReportCode(t, err, pkgerrors.CodeDependency)
}

func TestBudgetSourceErrorSurfacesAsDependency(t *testing.T) {
	conn := setupReportsTestDB(t)
	budget := &fakeBudgetSource{err: errors.New("sheet unreachable")}
	svc := buildReportsService(t, conn, budget, time.Now().UTC())

	_, err := svc.BudgetByCategory(context.Background(), 1)
	assertReportCode(t, err, pkgerrors.CodeDependency)
}

func TestBudgetByCategoryToleratesOverallFailure(t *testing.T) {
	conn := setupReportsTestDB(t)
	budget := &fakeBudgetSource{
		categories: map[string]decimal.Decimal{"plumbing": decimal.NewFromInt(100)},
		overallErr: errors.New("overall cell unreadable"),
	}
	svc := buildReportsService(t, conn, budget, time.Now().UTC())

	report, err := svc.BudgetByCategory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, report.Categories, 1)
	assert.Nil(t, report.Overall)
}

func TestOverallBudgetRoundsPercent(t *testing.T) {
	conn := setupReportsTestDB(t)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	budget := &fakeBudgetSource{overall: decimal.NewFromInt(300)}
	svc := buildReportsService(t, conn, budget, now)
	part := seedReportPart(t, conn, "Belt")

	seedDelivered(t, conn, part.ID, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(100), nil)

	overall, err := svc.OverallBudget(context.Background())
	require.NoError(t, err)
	assert.True(t, overall.Spent.Equal(decimal.NewFromInt(100)))
	assert.True(t, overall.Remaining.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "33.3", overall.PercentSpent.String())
}

func TestUsageTrendsWindowsAndShare(t *testing.T) {
	conn := setupReportsTestDB(t)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	svc := buildReportsService(t, conn, nil, now)

	valve := seedReportPart(t, conn, "Valve")
	filter := seedReportPart(t, conn, "Filter")

	// Within 7 days.
	seedDelivered(t, conn, valve.ID, time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC), 2, decimal.NewFromInt(60), nil)
	// Within 30 days but not 7.
	seedDelivered(t, conn, valve.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(20), nil)
	// Within the quarter but not 30 days.
	seedDelivered(t, conn, filter.ID, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC), 3, decimal.NewFromInt(20), nil)

	trends, err := svc.UsageTrends(context.Background())
	require.NoError(t, err)
	assert.True(t, trends.QuarterTotalCost.Equal(decimal.NewFromInt(100)))

	byID := make(map[uuid.UUID]PartTrendDTO)
	for _, p := range trends.Parts {
		byID[p.PartID] = p
	}

	v := byID[valve.ID]
	assert.Equal(t, 2, v.Last7Days.Quantity)
	assert.Equal(t, 3, v.Last30Days.Quantity)
	assert.Equal(t, 3, v.Quarter.Quantity)
	assert.Equal(t, "80", v.QuarterShare.String())

	f := byID[filter.ID]
	assert.Equal(t, 0, f.Last7Days.Quantity)
	assert.Equal(t, 0, f.Last30Days.Quantity)
	assert.Equal(t, 3, f.Quarter.Quantity)
	assert.Equal(t, "20", f.QuarterShare.String())
}

func TestUsageTrendsZeroTotalYieldsZeroShares(t *testing.T) {
	conn := setupReportsTestDB(t)
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	svc := buildReportsService(t, conn, nil, now)
	seedReportPart(t, conn, "Gasket")

	trends, err := svc.UsageTrends(context.Background())
	require.NoError(t, err)
	assert.True(t, trends.QuarterTotalCost.IsZero())
	for _, p := range trends.Parts {
		assert.True(t, p.QuarterShare.IsZero())
	}
}

func assertReportCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}
