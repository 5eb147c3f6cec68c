package normalize

import (
	"fmt"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

const inventoryColumnCount = 9

// Inventory normalizes the raw stock/cost export. Rows are the data rows
// only, nine positional columns each: code, description, unit, stock qty,
// stock value, returned qty, returned value, qty, balance. Every numeric
// column is comma-normalized and parsed; any failure is fatal for the
// whole call. A nil classifier falls back to the default keyword set.
func Inventory(rows [][]string, clf *Classifier) ([]models.InventoryItem, error) {
	if clf == nil {
		clf = DefaultClassifier()
	}

	numericCols := []struct {
		idx  int
		name string
	}{
		{3, "estoque"},
		{4, "valor_estoque"},
		{5, "qtd_devolvida"},
		{6, "valor_devolvida"},
		{7, "qtd"},
		{8, "saldo"},
	}

	out := make([]models.InventoryItem, 0, len(rows))

	for i, row := range rows {
		if len(row) != inventoryColumnCount {
			return nil, fmt.Errorf("inventory row %d has %d columns, want %d: %w", i, len(row), inventoryColumnCount, ErrColumnCount)
		}

		item := models.InventoryItem{
			Code:        row[0],
			Description: row[1],
			Unit:        row[2],
			Category:    clf.Categorize(row[1]),
		}

		for _, col := range numericCols {
			value, err := parseDecimal(row[col.idx])
			if err != nil {
				return nil, fmt.Errorf("inventory row %d: parse %s %q: %w", i, col.name, row[col.idx], err)
			}
			switch col.idx {
			case 3:
				item.Stock = value
			case 4:
				item.StockValue = value
			case 5:
				item.ReturnedQty = value
			case 6:
				item.ReturnedVal = value
			case 7:
				item.Qty = value
			case 8:
				item.Balance = value
			}
		}

		out = append(out, item)
	}

	return out, nil
}
