// Package normalize turns raw spreadsheet tables into typed rows. Column
// order is contractual: source header names are ignored and overwritten by
// position. Normalizers are all-or-nothing: a structural failure (wrong
// column count, non-coercible required numeric) aborts the whole call and
// the caller must not aggregate over partial output.
package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// ErrColumnCount indicates a row does not carry the contracted number of
// positional columns.
var ErrColumnCount = errors.New("unexpected column count")

const (
	salesColumnCount = 6
	timestampLayout  = "02/01/2006 15:04"
)

// Sales normalizes the raw sales export. Rows are the data rows only, six
// positional columns each: sale id, customer, salesperson, timestamp,
// payment method, amount. Unparseable timestamps and sale ids become
// missing values; an unparseable amount is fatal for the whole call.
func Sales(rows [][]string) ([]models.Sale, error) {
	out := make([]models.Sale, 0, len(rows))

	for i, row := range rows {
		if len(row) != salesColumnCount {
			return nil, fmt.Errorf("sales row %d has %d columns, want %d: %w", i, len(row), salesColumnCount, ErrColumnCount)
		}

		amount, err := parseDecimal(row[5])
		if err != nil {
			return nil, fmt.Errorf("sales row %d: parse amount %q: %w", i, row[5], err)
		}

		sale := models.Sale{
			SaleID:      parseOptionalID(row[0]),
			Customer:    row[1],
			Salesperson: row[2],
			Payment:     row[4],
			Amount:      amount,
			Hour:        -1,
		}

		if ts, err := time.Parse(timestampLayout, row[3]); err == nil {
			sale.Timestamp = ts
			sale.Hour = ts.Hour()
			sale.Weekday = ts.Weekday().String()
			sale.Month = ts.Month().String()
		}

		out = append(out, sale)
	}

	return out, nil
}
