// Package analytics computes the derived business metrics over normalized
// tables. Every aggregator is a pure function: it only reads its input and
// returns fresh tables. Insufficient upstream data degrades to an explicit
// insufficient result, never to an error.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

// General computes the headline business KPIs.
func General(sales []models.Sale, inventory []models.InventoryItem) models.GeneralMetrics {
	m := models.GeneralMetrics{TotalSales: len(sales)}

	for _, s := range sales {
		m.TotalRevenue = m.TotalRevenue.Add(s.Amount)
	}
	if len(sales) > 0 {
		m.AverageTicket = m.TotalRevenue.Div(decimal.NewFromInt(int64(len(sales)))).Round(2)
	}

	if len(inventory) > 0 {
		m.HasStockValue = true
		for _, item := range inventory {
			m.StockValueTotal = m.StockValueTotal.Add(item.StockValue)
			if item.Category == models.CategoryMeat {
				m.MeatProducts++
			}
		}
	}

	return m
}

// StockHealth computes the inventory health cards.
func StockHealth(inventory []models.InventoryItem) models.StockHealth {
	h := models.StockHealth{}
	if len(inventory) == 0 {
		return h
	}

	h.HasTotalValue = true
	h.HasTotalReturned = true
	h.HasStock = true

	for _, item := range inventory {
		h.TotalValue = h.TotalValue.Add(item.StockValue)
		h.TotalReturned = h.TotalReturned.Add(item.ReturnedQty)
		if item.Category == models.CategoryMeat {
			h.MeatItems++
		}
		if item.Stock.IsNegative() {
			h.NegativeStock++
		}
	}

	return h
}
