package analytics

import (
	"testing"
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/domain/models"
)

func TestPaymentsAggregation(t *testing.T) {
	ts := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	result := Payments([]models.Sale{
		saleAt("a", ts, " PIX ", "50"),
		saleAt("b", ts, "PIX", "30"),
		saleAt("c", ts, "DINHEIRO", "20"),
		saleAt("d", ts, "   ", "99"), // blank label, excluded
	})

	if result.Status != models.StatusOK {
		t.Fatalf("expected ok result, got %s", result.Status)
	}
	if len(result.Stats) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result.Stats))
	}

	top := result.Stats[0]
	if top.Method != "pix" {
		t.Errorf("expected remapped label pix first, got %q", top.Method)
	}
	if top.Revenue.String() != "80" {
		t.Errorf("expected revenue 80, got %s", top.Revenue)
	}
	if top.AverageTicket.String() != "40" {
		t.Errorf("expected average ticket 40, got %s", top.AverageTicket)
	}
	if top.Count != 2 {
		t.Errorf("expected count 2, got %d", top.Count)
	}

	if result.Stats[1].Method != "dinheiro" {
		t.Errorf("expected dinheiro second, got %q", result.Stats[1].Method)
	}
}

// Two source labels remapping to the same display name stay separate rows;
// re-aggregating them would change sums behind the product's back.
func TestPaymentsRemapCollisionKeptSeparate(t *testing.T) {
	ts := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	result := Payments([]models.Sale{
		saleAt("a", ts, "CARTAO DE CREDITO", "100"),
		saleAt("b", ts, "CARTAO CREDITO", "40"),
	})

	if len(result.Stats) != 2 {
		t.Fatalf("expected 2 rows after remap collision, got %d", len(result.Stats))
	}
	if result.Stats[0].Method != "credito" || result.Stats[1].Method != "credito" {
		t.Errorf("expected both rows remapped to credito, got %q and %q", result.Stats[0].Method, result.Stats[1].Method)
	}
	if result.Stats[0].Revenue.String() != "100" || result.Stats[1].Revenue.String() != "40" {
		t.Errorf("expected sums 100 and 40 kept separate, got %s and %s", result.Stats[0].Revenue, result.Stats[1].Revenue)
	}
}

func TestPaymentsUnmappedLabelKeepsTrimmedValue(t *testing.T) {
	ts := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	result := Payments([]models.Sale{
		saleAt("a", ts, " vale refeicao ", "10"),
	})

	if len(result.Stats) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Stats))
	}
	if result.Stats[0].Method != "vale refeicao" {
		t.Errorf("expected trimmed source label, got %q", result.Stats[0].Method)
	}
}

func TestPaymentsInsufficientWithoutLabels(t *testing.T) {
	ts := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	result := Payments([]models.Sale{saleAt("a", ts, "", "10")})
	if result.Status != models.StatusInsufficient {
		t.Fatalf("expected insufficient result, got %s", result.Status)
	}
}
