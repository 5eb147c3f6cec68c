package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories assigned by the description classifier.
const (
	CategoryMeat  = "CARNE"
	CategoryOther = "OUTROS"
)

// Sale is one normalized sales transaction row.
type Sale struct {
	SaleID      *int64 // nil when the source id did not coerce to a number
	Customer    string
	Salesperson string
	Timestamp   time.Time // zero value means the source timestamp did not parse
	Payment     string
	Amount      decimal.Decimal

	// Derived time fields. Hour is -1 and Weekday/Month are empty when
	// Timestamp is missing.
	Hour    int
	Weekday string
	Month   string
}

// HasTimestamp reports whether the row carries a parsed timestamp.
func (s Sale) HasTimestamp() bool { return !s.Timestamp.IsZero() }

// InventoryItem is one normalized stock/cost row.
type InventoryItem struct {
	Code        string
	Description string
	Unit        string
	Stock       decimal.Decimal
	StockValue  decimal.Decimal
	ReturnedQty decimal.Decimal
	ReturnedVal decimal.Decimal
	Qty         decimal.Decimal
	Balance     decimal.Decimal
	Category    string
}

// CashLogEntry is one line item reconstructed from the register report.
// Date is shared across every entry of the same negotiation block.
type CashLogEntry struct {
	Date        time.Time
	Code        string
	Product     string
	Unit        string
	Quantity    decimal.Decimal
	DiscountPct decimal.Decimal
	Amount      decimal.Decimal
}
