package analytics

import (
	"sort"
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

const cohortLabelLayout = "2006-01"

// maxHeatmapCohorts bounds the long-form heatmap to the most recent
// acquisition cohorts so the chart stays readable.
const maxHeatmapCohorts = 12

// Retention builds monthly acquisition cohorts from the sales history and
// computes the retention matrix, the mean retention curve, the heatmap long
// form and the acquisition KPIs for the most recent month. Rows without a
// parsed timestamp are dropped; an empty table after dropping yields the
// insufficient placeholder with zero KPIs.
func Retention(sales []models.Sale) models.RetentionResult {
	// customer -> distinct activity months
	activity := make(map[string]map[time.Time]bool)
	for _, s := range sales {
		if !s.HasTimestamp() {
			continue
		}
		month := monthOf(s.Timestamp)
		months, ok := activity[s.Customer]
		if !ok {
			months = make(map[time.Time]bool)
			activity[s.Customer] = months
		}
		months[month] = true
	}

	if len(activity) == 0 {
		return emptyRetention("no dated sales rows")
	}

	// cohort month = the customer's first activity month
	cohorts := make(map[string]time.Time, len(activity))
	for customer, months := range activity {
		var first time.Time
		for month := range months {
			if first.IsZero() || month.Before(first) {
				first = month
			}
		}
		cohorts[customer] = first
	}

	// distinct customers per (cohort, offset)
	counts := make(map[time.Time]map[int]int)
	for customer, months := range activity {
		cohort := cohorts[customer]
		offsets, ok := counts[cohort]
		if !ok {
			offsets = make(map[int]int)
			counts[cohort] = offsets
		}
		for month := range months {
			offsets[monthsBetween(cohort, month)]++
		}
	}

	cohortMonths := make([]time.Time, 0, len(counts))
	for cohort := range counts {
		cohortMonths = append(cohortMonths, cohort)
	}
	sort.Slice(cohortMonths, func(i, j int) bool { return cohortMonths[i].Before(cohortMonths[j]) })

	// Normalize each cohort row by its own starting size.
	matrix := make([]models.CohortRetention, 0, len(cohortMonths))
	for _, cohort := range cohortMonths {
		size := counts[cohort][0]
		rates := make(map[int]float64, len(counts[cohort]))
		for offset, count := range counts[cohort] {
			rates[offset] = float64(count) / float64(size)
		}
		matrix = append(matrix, models.CohortRetention{
			Cohort: cohort.Format(cohortLabelLayout),
			Size:   size,
			Rates:  rates,
		})
	}

	curve := retentionCurve(counts)
	heatmap := heatmapCells(cohortMonths, counts)
	newCustomers, retained := acquisitionKPIs(activity)

	return models.RetentionResult{
		ResultMeta:        models.OK(),
		Matrix:            matrix,
		Curve:             curve,
		Heatmap:           heatmap,
		NewCustomers:      newCustomers,
		RetainedCustomers: retained,
	}
}

// retentionCurve is the column-wise mean across cohorts, excluding offset 0
// (trivially 100%). Cohorts with no activity at an offset do not contribute
// to that offset's mean.
func retentionCurve(counts map[time.Time]map[int]int) []models.RetentionPoint {
	sums := make(map[int]float64)
	observed := make(map[int]int)

	for _, offsets := range counts {
		size := offsets[0]
		for offset, count := range offsets {
			if offset == 0 {
				continue
			}
			sums[offset] += float64(count) / float64(size)
			observed[offset]++
		}
	}

	offsets := make([]int, 0, len(sums))
	for offset := range sums {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	curve := make([]models.RetentionPoint, 0, len(offsets))
	for _, offset := range offsets {
		curve = append(curve, models.RetentionPoint{
			Offset:      offset,
			AverageRate: sums[offset] / float64(observed[offset]),
		})
	}
	return curve
}

// heatmapCells reshapes the matrix into long (cohort, offset, rate) form,
// keeping only the most recent cohorts and dropping offset 0 plus cells
// the cohort never reached.
func heatmapCells(cohortMonths []time.Time, counts map[time.Time]map[int]int) []models.RetentionCell {
	kept := cohortMonths
	if len(kept) > maxHeatmapCohorts {
		kept = kept[len(kept)-maxHeatmapCohorts:]
	}

	cells := make([]models.RetentionCell, 0)
	for _, cohort := range kept {
		size := counts[cohort][0]
		offsets := make([]int, 0, len(counts[cohort]))
		for offset := range counts[cohort] {
			if offset > 0 {
				offsets = append(offsets, offset)
			}
		}
		sort.Ints(offsets)
		for _, offset := range offsets {
			cells = append(cells, models.RetentionCell{
				Cohort: cohort.Format(cohortLabelLayout),
				Offset: offset,
				Rate:   float64(counts[cohort][offset]) / float64(size),
			})
		}
	}
	return cells
}

// acquisitionKPIs compares the most recent activity month against the
// calendar month before it. When the previous month has no active
// customers (a single month of history) both KPIs are 0.
func acquisitionKPIs(activity map[string]map[time.Time]bool) (newCustomers, retained int) {
	var maxMonth time.Time
	for _, months := range activity {
		for month := range months {
			if month.After(maxMonth) {
				maxMonth = month
			}
		}
	}

	prevMonth := maxMonth.AddDate(0, -1, 0)

	var prevActive bool
	for _, months := range activity {
		if months[prevMonth] {
			prevActive = true
			break
		}
	}
	if !prevActive {
		return 0, 0
	}

	for _, months := range activity {
		switch {
		case months[maxMonth] && months[prevMonth]:
			retained++
		case months[maxMonth]:
			newCustomers++
		}
	}
	return newCustomers, retained
}

func emptyRetention(reason string) models.RetentionResult {
	return models.RetentionResult{
		ResultMeta: models.Insufficient(reason),
		Matrix:     []models.CohortRetention{},
		Curve:      []models.RetentionPoint{},
		Heatmap:    []models.RetentionCell{},
	}
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
