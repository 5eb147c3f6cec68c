package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// Capital computes the capital allocation tables: per-row drill-down
// detail, per-category returned value and the simplified per-category
// split. A zero stock total defines every share as 0 instead of dividing.
func Capital(inventory []models.InventoryItem) models.CapitalResult {
	if len(inventory) == 0 {
		return models.CapitalResult{
			ResultMeta: models.Insufficient("no inventory rows"),
			Detail:     []models.CapitalDetail{},
			Returns:    []models.CategoryReturns{},
			Simplified: []models.CategoryCapital{},
		}
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	returnsByCategory := make(map[string]decimal.Decimal)

	for _, item := range inventory {
		total = total.Add(item.StockValue)
		byCategory[item.Category] = byCategory[item.Category].Add(item.StockValue)
		returnsByCategory[item.Category] = returnsByCategory[item.Category].Add(item.ReturnedVal)
	}

	shares := make(map[string]float64, len(byCategory))
	for category, value := range byCategory {
		shares[category] = shareOf(value, total)
	}

	detail := make([]models.CapitalDetail, 0, len(inventory))
	for _, item := range inventory {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		detail = append(detail, models.CapitalDetail{
			Description:   item.Description,
			StockValue:    item.StockValue,
			Category:      item.Category,
			CategoryShare: shares[item.Category],
		})
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	returns := make([]models.CategoryReturns, 0, len(categories))
	simplified := make([]models.CategoryCapital, 0, len(categories))
	for _, category := range categories {
		returns = append(returns, models.CategoryReturns{
			Category:    category,
			ReturnedVal: returnsByCategory[category],
		})
		simplified = append(simplified, models.CategoryCapital{
			Category:   category,
			StockValue: byCategory[category],
			Share:      shares[category],
		})
	}

	return models.CapitalResult{
		ResultMeta: models.OK(),
		Detail:     detail,
		Returns:    returns,
		Simplified: simplified,
	}
}

// shareOf is the percentage of total that value represents, defined as 0
// when the total is zero.
func shareOf(value, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	share, _ := value.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return share
}
