package normalize

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// parseDecimal applies the pipeline's locale rule: every comma becomes a
// dot, then the result is parsed as a decimal. Thousands-separated input
// such as "1.234,56" turns into "1.234.56" and fails the parse; the source
// system never emits separators, so the failure is treated as malformed
// input rather than silently mis-read.
func parseDecimal(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return decimal.NewFromString(normalized)
}

// parseOptionalID coerces a numeric identifier, tolerating float renderings
// like "1024.0". A value that is not numeric yields nil, never an error.
func parseOptionalID(raw string) *int64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		v := int64(f)
		return &v
	}
	return nil
}
