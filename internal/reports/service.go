package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db/models"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/sheets"
)

var oneHundred = decimal.NewFromInt(100)

// Service exposes the reporting queries.
type Service interface {
	MonthlyHistory(ctx context.Context, year int) (*MonthlyHistoryDTO, error)
	BudgetByCategory(ctx context.Context, quarter int) (*BudgetReportDTO, error)
	OverallBudget(ctx context.Context) (*OverallBudgetDTO, error)
	UsageTrends(ctx context.Context) (*UsageTrendsDTO, error)
}

type service struct {
	repo      *Repository
	partsRepo *parts.Repository
	budget    sheets.BudgetSource
	logg      *logger.Logger
	now       func() time.Time
}

// NewService constructs a reports service. The budget source may be nil when
// no spreadsheet is configured; budget reports then fail with a dependency
// error instead of at startup.
func NewService(repo *Repository, partsRepo *parts.Repository, budget sheets.BudgetSource, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if partsRepo == nil {
		return nil, fmt.Errorf("parts repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		partsRepo: partsRepo,
		budget:    budget,
		logg:      logg,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// MonthlyHistory buckets delivered spend for one calendar year by month.
func (s *service) MonthlyHistory(ctx context.Context, year int) (*MonthlyHistoryDTO, error) {
	if year < 2000 || year > 2200 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year out of range")
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	delivered, err := s.repo.DeliveredBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delivered orders")
	}

	out := &MonthlyHistoryDTO{
		Year:      year,
		Months:    make([]MonthBucket, 12),
		TotalCost: decimal.Zero,
	}
	for m := 0; m < 12; m++ {
		out.Months[m] = MonthBucket{Month: time.Month(m + 1), TotalCost: decimal.Zero}
	}
	for i := range delivered {
		o := &delivered[i]
		bucket := &out.Months[o.DeliveredDate.Month()-1]
		bucket.Orders++
		bucket.TotalCost = bucket.TotalCost.Add(o.TotalCost)
		out.TotalCost = out.TotalCost.Add(o.TotalCost)
	}
	return out, nil
}

// BudgetByCategory compares quarter spend per category against the sheet
// budgets for the current year's quarter.
func (s *service) BudgetByCategory(ctx context.Context, quarter int) (*BudgetReportDTO, error) {
	if quarter < 1 || quarter > 4 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quarter must be between 1 and 4")
	}
	if s.budget == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget source not configured")
	}

	now := s.now()
	from, to := quarterBounds(now.Year(), quarter)

	budgets, err := s.budget.CategoryBudgets(ctx, quarter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sheets: category budgets")
	}

	delivered, err := s.repo.DeliveredBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delivered orders")
	}
	spentByCategory := make(map[string]decimal.Decimal)
	for i := range delivered {
		o := &delivered[i]
		if o.BudgetCategory == nil || *o.BudgetCategory == "" {
			continue
		}
		spentByCategory[*o.BudgetCategory] = spentByCategory[*o.BudgetCategory].Add(o.TotalCost)
	}

	names := make([]string, 0, len(budgets))
	for name := range budgets {
		names = append(names, name)
	}
	for name := range spentByCategory {
		if _, ok := budgets[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	report := &BudgetReportDTO{
		Quarter:    quarter,
		Year:       now.Year(),
		Categories: make([]CategoryBudgetDTO, 0, len(names)),
	}
	for _, name := range names {
		budget := budgets[name]
		spent := spentByCategory[name]
		report.Categories = append(report.Categories, CategoryBudgetDTO{
			Category:     name,
			Budget:       budget,
			Spent:        spent,
			PercentSpent: percentSpent(spent, budget),
			OverBudget:   overBudget(spent, budget),
		})
	}

	// category figures are still useful when the overall cell fails to load
	overall, err := s.OverallBudget(ctx)
	if err != nil {
		s.logg.Error(ctx, "reports.budget.overall_unavailable", err)
	} else {
		report.Overall = overall
	}
	return report, nil
}

// OverallBudget compares the sheet's overall budget against delivered spend
// for the current year.
func (s *service) OverallBudget(ctx context.Context) (*OverallBudgetDTO, error) {
	if s.budget == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget source not configured")
	}

	budget, err := s.budget.OverallBudget(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sheets: overall budget")
	}

	year := s.now().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	delivered, err := s.repo.DeliveredBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delivered orders")
	}
	spent := decimal.Zero
	for i := range delivered {
		spent = spent.Add(delivered[i].TotalCost)
	}

	return &OverallBudgetDTO{
		Budget:       budget,
		Spent:        spent,
		Remaining:    budget.Sub(spent),
		PercentSpent: percentSpent(spent, budget).Round(1),
	}, nil
}

// UsageTrends sums delivered quantity and cost per part over rolling 7-day,
// 30-day, and current-quarter windows.
func (s *service) UsageTrends(ctx context.Context) (*UsageTrendsDTO, error) {
	now := s.now()
	today := now.Truncate(24 * time.Hour)
	quarter := int(now.Month()-1)/3 + 1
	quarterFrom, quarterTo := quarterBounds(now.Year(), quarter)

	from := quarterFrom
	if thirtyAgo := today.AddDate(0, 0, -30); thirtyAgo.Before(from) {
		from = thirtyAgo
	}
	to := quarterTo
	if tomorrow := today.AddDate(0, 0, 1); tomorrow.After(to) {
		to = tomorrow
	}

	delivered, err := s.repo.DeliveredBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delivered orders")
	}

	allParts, err := s.partsRepo.List(ctx, parts.ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list parts")
	}
	trendByPart := make(map[uuid.UUID]*PartTrendDTO, len(allParts))
	ordered := make([]*PartTrendDTO, 0, len(allParts))
	for i := range allParts {
		p := &allParts[i]
		trend := &PartTrendDTO{
			PartID:       p.ID,
			Name:         p.Name,
			ModelNumber:  p.ModelNumber,
			Last7Days:    TrendWindow{TotalCost: decimal.Zero},
			Last30Days:   TrendWindow{TotalCost: decimal.Zero},
			Quarter:      TrendWindow{TotalCost: decimal.Zero},
			QuarterShare: decimal.Zero,
		}
		trendByPart[p.ID] = trend
		ordered = append(ordered, trend)
	}

	quarterTotal := decimal.Zero
	sevenFrom := today.AddDate(0, 0, -7)
	thirtyFrom := today.AddDate(0, 0, -30)
	for i := range delivered {
		o := &delivered[i]
		trend, ok := trendByPart[o.PartID]
		if !ok {
			continue
		}
		d := *o.DeliveredDate
		if !d.Before(sevenFrom) {
			addWindow(&trend.Last7Days, o)
		}
		if !d.Before(thirtyFrom) {
			addWindow(&trend.Last30Days, o)
		}
		if !d.Before(quarterFrom) && d.Before(quarterTo) {
			addWindow(&trend.Quarter, o)
			quarterTotal = quarterTotal.Add(o.TotalCost)
		}
	}

	out := &UsageTrendsDTO{
		From:             from,
		To:               to,
		QuarterTotalCost: quarterTotal,
		Parts:            make([]PartTrendDTO, 0, len(ordered)),
	}
	for _, trend := range ordered {
		if quarterTotal.IsPositive() {
			trend.QuarterShare = trend.Quarter.TotalCost.Div(quarterTotal).Mul(oneHundred).Round(1)
		}
		out.Parts = append(out.Parts, *trend)
	}
	return out, nil
}

func addWindow(w *TrendWindow, o *models.OrderHistory) {
	w.Quantity += o.PurchasedQuantity
	w.TotalCost = w.TotalCost.Add(o.TotalCost)
}

func percentSpent(spent, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(budget).Mul(oneHundred)
}

func overBudget(spent, budget decimal.Decimal) decimal.Decimal {
	if over := spent.Sub(budget); over.IsPositive() {
		return over
	}
	return decimal.Zero
}

func quarterBounds(year, quarter int) (time.Time, time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	from := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 3, 0)
}
