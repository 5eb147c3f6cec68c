package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// weekdayOrder is the canonical Monday-first sequence the weekly table is
// reordered onto, regardless of input row order.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekdayLabels = map[string]string{
	"Monday":    "Segunda",
	"Tuesday":   "Terça",
	"Wednesday": "Quarta",
	"Thursday":  "Quinta",
	"Friday":    "Sexta",
	"Saturday":  "Sábado",
	"Sunday":    "Domingo",
}

// Seasonality reduces the sales table by hour of day and by day of week,
// summing revenue. Rows without a parsed timestamp are dropped before
// grouping; absent hours and days are never zero-filled.
func Seasonality(sales []models.Sale) models.SeasonalityResult {
	byHour := make(map[int]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)

	for _, s := range sales {
		if !s.HasTimestamp() {
			continue
		}
		byHour[s.Hour] = byHour[s.Hour].Add(s.Amount)
		byDay[s.Weekday] = byDay[s.Weekday].Add(s.Amount)
	}

	if len(byHour) == 0 {
		return models.SeasonalityResult{
			ResultMeta: models.Insufficient("no dated sales rows"),
			Hourly:     []models.HourlyRevenue{},
			Weekly:     []models.WeekdayRevenue{},
		}
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	hourly := make([]models.HourlyRevenue, 0, len(hours))
	for _, h := range hours {
		hourly = append(hourly, models.HourlyRevenue{Hour: h, Revenue: byHour[h]})
	}

	weekly := make([]models.WeekdayRevenue, 0, len(byDay))
	for _, day := range weekdayOrder {
		revenue, ok := byDay[day]
		if !ok {
			continue
		}
		weekly = append(weekly, models.WeekdayRevenue{
			Weekday: day,
			Label:   weekdayLabels[day],
			Revenue: revenue,
		})
	}

	return models.SeasonalityResult{ResultMeta: models.OK(), Hourly: hourly, Weekly: weekly}
}
