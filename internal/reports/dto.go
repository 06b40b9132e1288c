package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthBucket aggregates deliveries landing in one calendar month.
type MonthBucket struct {
	Month     time.Month      `json:"month"`
	Orders    int             `json:"orders"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// MonthlyHistoryDTO is the year view of delivered spend.
type MonthlyHistoryDTO struct {
	Year      int             `json:"year"`
	Months    []MonthBucket   `json:"months"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// CategoryBudgetDTO compares one category's quarter budget with its spend.
type CategoryBudgetDTO struct {
	Category     string          `json:"category"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	PercentSpent decimal.Decimal `json:"percent_spent"`
	OverBudget   decimal.Decimal `json:"over_budget"`
}

// BudgetReportDTO is the quarter budget view plus the overall position.
type BudgetReportDTO struct {
	Quarter    int                 `json:"quarter"`
	Year       int                 `json:"year"`
	Categories []CategoryBudgetDTO `json:"categories"`
	Overall    *OverallBudgetDTO   `json:"overall,omitempty"`
}

// OverallBudgetDTO is the top line budget position for the current year.
type OverallBudgetDTO struct {
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentSpent decimal.Decimal `json:"percent_spent"`
}

// TrendWindow sums delivered quantity and cost over one rolling window.
type TrendWindow struct {
	Quantity  int             `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// PartTrendDTO carries one part's rolling usage windows.
type PartTrendDTO struct {
	PartID       uuid.UUID       `json:"part_id"`
	Name         string          `json:"name"`
	ModelNumber  string          `json:"model_number"`
	Last7Days    TrendWindow     `json:"last_7_days"`
	Last30Days   TrendWindow     `json:"last_30_days"`
	Quarter      TrendWindow     `json:"quarter"`
	QuarterShare decimal.Decimal `json:"quarter_share"`
}

// UsageTrendsDTO is the full trends listing.
type UsageTrendsDTO struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	QuarterTotalCost decimal.Decimal `json:"quarter_total_cost"`
	Parts            []PartTrendDTO  `json:"parts"`
}
