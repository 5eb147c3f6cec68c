package analytics

import (
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// FilterByDate keeps sales whose timestamp date falls within [from, to],
// both inclusive at day precision. A zero bound leaves that side open.
// Rows without a timestamp are kept only when both bounds are open, since
// they cannot be placed inside a period.
func FilterByDate(sales []models.Sale, from, to time.Time) []models.Sale {
	if from.IsZero() && to.IsZero() {
		return sales
	}

	out := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.HasTimestamp() {
			continue
		}
		day := time.Date(s.Timestamp.Year(), s.Timestamp.Month(), s.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}
