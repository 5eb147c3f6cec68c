package normalize

import (
	"errors"
	"testing"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

func inventoryRow(code, desc, unit, stock, stockVal, retQty, retVal, qty, balance string) []string {
	return []string{code, desc, unit, stock, stockVal, retQty, retVal, qty, balance}
}

func TestInventoryNormalization(t *testing.T) {
	rows := [][]string{
		inventoryRow("001", "CARNE BOVINA", "KG", "12,5", "350,75", "0", "0", "12,5", "12,5"),
	}

	items, err := Inventory(rows, nil)
	if err != nil {
		t.Fatalf("Inventory failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row, got %d", len(items))
	}

	item := items[0]
	if item.Category != models.CategoryMeat {
		t.Errorf("expected category %s, got %s", models.CategoryMeat, item.Category)
	}
	if item.Stock.String() != "12.5" {
		t.Errorf("expected stock 12.5, got %s", item.Stock)
	}
	if item.StockValue.String() != "350.75" {
		t.Errorf("expected stock value 350.75, got %s", item.StockValue)
	}
}

func TestInventoryNumericFailureIsFatal(t *testing.T) {
	rows := [][]string{
		inventoryRow("001", "CARNE BOVINA", "KG", "12,5", "n/d", "0", "0", "12,5", "12,5"),
	}

	if _, err := Inventory(rows, nil); err == nil {
		t.Fatal("expected fatal error for non-numeric stock value")
	}
}

func TestInventoryColumnCountIsFatal(t *testing.T) {
	rows := [][]string{{"001", "CARNE BOVINA", "KG"}}

	_, err := Inventory(rows, nil)
	if !errors.Is(err, ErrColumnCount) {
		t.Fatalf("expected ErrColumnCount, got %v", err)
	}
}

func TestClassifierCategories(t *testing.T) {
	clf := DefaultClassifier()

	cases := []struct {
		description string
		want        string
	}{
		{"CARNE BOVINA", models.CategoryMeat},
		{"carne moída", models.CategoryMeat},
		{"REFRIGERANTE", models.CategoryOther},
		// Packaging-suffix rule: AGEM matches EMBALAGEM on purpose.
		{"EMBALAGEM", models.CategoryMeat},
		{"", models.CategoryOther},
	}

	for _, tc := range cases {
		if got := clf.Categorize(tc.description); got != tc.want {
			t.Errorf("Categorize(%q) = %s, want %s", tc.description, got, tc.want)
		}
	}
}

func TestClassifierCustomKeywords(t *testing.T) {
	clf := NewClassifier("FRANGO")

	if got := clf.Categorize("peito de frango"); got != models.CategoryMeat {
		t.Errorf("expected custom keyword to match, got %s", got)
	}
	if got := clf.Categorize("EMBALAGEM"); got != models.CategoryOther {
		t.Errorf("expected EMBALAGEM to miss without the AGEM keyword, got %s", got)
	}
}
