package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralMetrics bundles the headline KPI cards.
type GeneralMetrics struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AverageTicket   decimal.Decimal `json:"average_ticket"`
	TotalSales      int             `json:"total_sales"`
	StockValueTotal decimal.Decimal `json:"stock_value_total"`
	HasStockValue   bool            `json:"has_stock_value"`
	MeatProducts    int             `json:"meat_products"`
}

// StockHealth bundles the inventory health cards.
type StockHealth struct {
	TotalValue       decimal.Decimal `json:"total_value"`
	HasTotalValue    bool            `json:"has_total_value"`
	MeatItems        int             `json:"meat_items"`
	TotalReturned    decimal.Decimal `json:"total_returned"`
	HasTotalReturned bool            `json:"has_total_returned"`
	NegativeStock    int             `json:"negative_stock"`
	HasStock         bool            `json:"has_stock"`
}

// HourlyRevenue is revenue summed over one hour of the day.
type HourlyRevenue struct {
	Hour    int             `json:"hour"`
	Revenue decimal.Decimal `json:"revenue"`
}

// WeekdayRevenue is revenue summed over one day of the week. Weekday is the
// English day name used for grouping; Label is the pt-BR display name.
type WeekdayRevenue struct {
	Weekday string          `json:"weekday"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SeasonalityResult holds both seasonality reductions.
type SeasonalityResult struct {
	ResultMeta
	Hourly []HourlyRevenue  `json:"hourly"`
	Weekly []WeekdayRevenue `json:"weekly"`
}

// PaymentStat is the per-payment-method aggregate row. Method carries the
// remapped display name.
type PaymentStat struct {
	Method        string          `json:"method"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	Count         int             `json:"count"`
}

// PaymentResult holds the payment-method aggregate, sorted by revenue
// descending.
type PaymentResult struct {
	ResultMeta
	Stats []PaymentStat `json:"stats"`
}

// CapitalDetail is one inventory row joined against its category share, for
// drill-down views.
type CapitalDetail struct {
	Description   string          `json:"description"`
	StockValue    decimal.Decimal `json:"stock_value"`
	Category      string          `json:"category"`
	CategoryShare float64         `json:"category_share"`
}

// CategoryReturns is the total returned value of one category.
type CategoryReturns struct {
	Category    string          `json:"category"`
	ReturnedVal decimal.Decimal `json:"returned_value"`
}

// CategoryCapital is the simplified per-category capital allocation row.
type CategoryCapital struct {
	Category   string          `json:"category"`
	StockValue decimal.Decimal `json:"stock_value"`
	Share      float64         `json:"share"`
}

// CapitalResult holds the three derived capital tables.
type CapitalResult struct {
	ResultMeta
	Detail     []CapitalDetail   `json:"detail"`
	Returns    []CategoryReturns `json:"returns"`
	Simplified []CategoryCapital `json:"simplified"`
}

// CohortRetention is one row of the retention matrix. Rates is keyed by
// months-since-acquisition; offset 0 is always 1.0 for a nonempty cohort.
type CohortRetention struct {
	Cohort string          `json:"cohort"`
	Size   int             `json:"size"`
	Rates  map[int]float64 `json:"rates"`
}

// RetentionPoint is the mean retention across cohorts at one offset.
type RetentionPoint struct {
	Offset      int     `json:"offset"`
	AverageRate float64 `json:"average_rate"`
}

// RetentionCell is the long-form heatmap cell (cohort x offset).
type RetentionCell struct {
	Cohort string  `json:"cohort"`
	Offset int     `json:"offset"`
	Rate   float64 `json:"rate"`
}

// RetentionResult holds the cohort matrix, the mean retention curve, the
// heatmap long form and the acquisition KPIs for the most recent month.
type RetentionResult struct {
	ResultMeta
	Matrix            []CohortRetention `json:"matrix"`
	Curve             []RetentionPoint  `json:"curve"`
	Heatmap           []RetentionCell   `json:"heatmap"`
	NewCustomers      int               `json:"new_customers"`
	RetainedCustomers int               `json:"retained_customers"`
}

// DashboardSnapshot is the full aggregate bundle computed from the loaded
// tables. ID changes on every recomputation.
type DashboardSnapshot struct {
	ID          string            `json:"id"`
	ComputedAt  time.Time         `json:"computed_at"`
	General     GeneralMetrics    `json:"general"`
	Seasonality SeasonalityResult `json:"seasonality"`
	Payments    PaymentResult     `json:"payments"`
	Stock       StockHealth       `json:"stock"`
	Capital     CapitalResult     `json:"capital"`
	Retention   RetentionResult   `json:"retention"`
}
