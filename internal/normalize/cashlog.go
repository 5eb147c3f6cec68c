package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// The register report has no reliable header. Line items sit between a
// per-block negotiation row (which carries the date for everything below
// it), a column header row and a terminal total row. Everything else is
// layout noise.
type cashLogState int

const (
	stateSeeking cashLogState = iota
	stateInHeader
	stateCollecting
)

const (
	cashLogDateLayout  = "02/01/2006"
	negotiationMarker  = "NEGOCIA"
	totalMarker        = "TOTAL"
	headerFirstLabel   = "Código"
	headerSecondLabel  = "Produto"
	cashLogColumnCount = 6
)

var cashLogDatePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

// CashLog reconstructs line items from the semi-structured register
// report. Rows are scanned in source order; an empty report yields an
// empty table, never an error.
func CashLog(rows [][]string) []models.CashLogEntry {
	var (
		entries   []models.CashLogEntry
		state     = stateSeeking
		blockDate time.Time
	)

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		if state == stateInHeader {
			state = stateCollecting
		}

		if date, ok := negotiationDate(row); ok {
			blockDate = date
			state = stateSeeking
			continue
		}

		if isHeaderRow(row) {
			state = stateInHeader
			continue
		}

		if containsTotal(row) {
			state = stateSeeking
			continue
		}

		if state != stateCollecting || blockDate.IsZero() {
			continue
		}

		entry, ok := collectEntry(row, blockDate)
		if !ok {
			// Non-numeric leading cell: blank line or layout noise.
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// negotiationDate recognizes a block header row and extracts its date from
// the cell adjacent to the marker.
func negotiationDate(row []string) (time.Time, bool) {
	if !strings.Contains(strings.ToUpper(row[0]), negotiationMarker) {
		return time.Time{}, false
	}
	if len(row) < 2 {
		return time.Time{}, false
	}
	match := cashLogDatePattern.FindString(row[1])
	if match == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(cashLogDateLayout, match)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func isHeaderRow(row []string) bool {
	return len(row) >= 2 &&
		strings.TrimSpace(row[0]) == headerFirstLabel &&
		strings.TrimSpace(row[1]) == headerSecondLabel
}

func containsTotal(row []string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToUpper(cell), totalMarker) {
			return true
		}
	}
	return false
}

func collectEntry(row []string, date time.Time) (models.CashLogEntry, bool) {
	if len(row) < cashLogColumnCount {
		return models.CashLogEntry{}, false
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64); err != nil {
		return models.CashLogEntry{}, false
	}

	quantity, err := parseDecimal(row[3])
	if err != nil {
		return models.CashLogEntry{}, false
	}
	discount, err := parseDecimal(row[4])
	if err != nil {
		return models.CashLogEntry{}, false
	}
	amount, err := parseDecimal(row[5])
	if err != nil {
		return models.CashLogEntry{}, false
	}

	return models.CashLogEntry{
		Date:        date,
		Code:        strings.TrimSpace(row[0]),
		Product:     row[1],
		Unit:        row[2],
		Quantity:    quantity,
		DiscountPct: discount,
		Amount:      amount,
	}, true
}
