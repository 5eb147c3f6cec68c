package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// paymentDisplayNames remaps raw register labels to the business-friendly
// names the dashboard shows. Labels without an entry keep their trimmed
// source value. Two source labels may map to the same display name; those
// rows are intentionally kept separate (see DESIGN.md).
var paymentDisplayNames = map[string]string{
	"DINHEIRO":          "dinheiro",
	"PIX":               "pix",
	"CARTAO DE CREDITO": "credito",
	"CARTAO CREDITO":    "credito",
	"CARTAO DE DEBITO":  "debito",
	"CARTAO DEBITO":     "debito",
	"CHEQUE":            "cheque",
	"CREDIARIO":         "crediario",
}

// Payments groups sales by their trimmed payment label, computing revenue
// sum, average ticket and count per group, sorted by revenue descending.
// Rows with a blank label are excluded.
func Payments(sales []models.Sale) models.PaymentResult {
	type group struct {
		revenue decimal.Decimal
		count   int
	}
	groups := make(map[string]*group)

	for _, s := range sales {
		label := strings.TrimSpace(s.Payment)
		if label == "" {
			continue
		}
		g, ok := groups[label]
		if !ok {
			g = &group{}
			groups[label] = g
		}
		g.revenue = g.revenue.Add(s.Amount)
		g.count++
	}

	if len(groups) == 0 {
		return models.PaymentResult{
			ResultMeta: models.Insufficient("no sales rows with a payment label"),
			Stats:      []models.PaymentStat{},
		}
	}

	stats := make([]models.PaymentStat, 0, len(groups))
	for label, g := range groups {
		stats = append(stats, models.PaymentStat{
			Method:        label,
			Revenue:       g.revenue.Round(2),
			AverageTicket: g.revenue.Div(decimal.NewFromInt(int64(g.count))).Round(2),
			Count:         g.count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].Method < stats[j].Method
	})

	// Remap after sorting so display-name collisions cannot reorder or
	// merge groups.
	for i := range stats {
		if display, ok := paymentDisplayNames[stats[i].Method]; ok {
			stats[i].Method = display
		}
	}

	return models.PaymentResult{ResultMeta: models.OK(), Stats: stats}
}
