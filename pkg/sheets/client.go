package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

const pingTimeout = 10 * time.Second

var (
	errSpreadsheetIDRequired = errors.New("budget spreadsheet id is required")
	errClientNotInitialized  = errors.New("sheets client not initialized")
	errInvalidQuarter        = errors.New("quarter must be between 1 and 4")
)

// BudgetSource is what the reporting layer needs from the spreadsheet.
type BudgetSource interface {
	OverallBudget(ctx context.Context) (decimal.Decimal, error)
	CategoryBudgets(ctx context.Context, quarter int) (map[string]decimal.Decimal, error)
}

type Pinger interface {
	Ping(context.Context) error
}

// Client reads budget figures from the configured Google spreadsheet.
// The category grid keeps one category per row with twelve monthly
// amounts; a quarterly budget is the sum of its three months.
type Client struct {
	svc *sheets.Service
	cfg config.BudgetConfig
}

func NewClient(ctx context.Context, cfg config.BudgetConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errSpreadsheetIDRequired
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	client := &Client{svc: svc, cfg: cfg}

	if logg != nil {
		logg.Info(ctx, "sheets client initialized")
	}
	return client, nil
}

// Ping verifies the spreadsheet is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.svc == nil {
		return errClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := c.svc.Spreadsheets.Get(c.cfg.SpreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("checking spreadsheet %q: %w", c.cfg.SpreadsheetID, err)
	}
	return nil
}

// OverallBudget reads the single named cell holding the total budget.
func (c *Client) OverallBudget(ctx context.Context) (decimal.Decimal, error) {
	if c == nil || c.svc == nil {
		return decimal.Zero, errClientNotInitialized
	}

	rng := c.cfg.Worksheet + "!" + c.cfg.OverallCell
	resp, err := c.svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading overall budget cell %q: %w", rng, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return decimal.Zero, nil
	}
	return ParseMoney(resp.Values[0][0])
}

// CategoryBudgets returns the per-category budget for the given quarter.
func (c *Client) CategoryBudgets(ctx context.Context, quarter int) (map[string]decimal.Decimal, error) {
	if c == nil || c.svc == nil {
		return nil, errClientNotInitialized
	}
	if quarter < 1 || quarter > 4 {
		return nil, errInvalidQuarter
	}

	rng := c.cfg.Worksheet + "!" + c.cfg.CategoryRange
	resp, err := c.svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading category range %q: %w", rng, err)
	}

	return budgetsFromGrid(resp.Values, quarter)
}

// budgetsFromGrid folds monthly columns into quarterly totals. Row layout
// is category name in the first column followed by January through
// December.
func budgetsFromGrid(rows [][]any, quarter int) (map[string]decimal.Decimal, error) {
	firstMonthCol := 1 + (quarter-1)*3

	budgets := map[string]decimal.Decimal{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name, ok := row[0].(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		total := decimal.Zero
		for col := firstMonthCol; col < firstMonthCol+3 && col < len(row); col++ {
			amount, err := ParseMoney(row[col])
			if err != nil {
				return nil, fmt.Errorf("category %q column %d: %w", name, col, err)
			}
			total = total.Add(amount)
		}
		budgets[name] = total
	}
	return budgets, nil
}

// ParseMoney accepts the loose cell formats spreadsheets produce,
// like "$1,250.00", " 300 " or a bare float.
func ParseMoney(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(val)
		if cleaned == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero, fmt.Errorf("unparseable amount %q", val)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported cell type %T", v)
	}
}
