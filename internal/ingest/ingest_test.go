package ingest

import (
	"testing"
)

func TestParseCSV(t *testing.T) {
	rows, err := Parse("vendas.csv", []byte("venda,cliente\n1,a\n2,b\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "1" || rows[1][1] != "a" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	if _, err := Parse("vendas.pdf", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestPadRows(t *testing.T) {
	rows := PadRows([][]string{{"a"}, {"b", "c", "d"}}, 3)
	if len(rows[0]) != 3 {
		t.Errorf("expected short row padded to 3 cells, got %d", len(rows[0]))
	}
	if rows[0][0] != "a" || rows[0][1] != "" {
		t.Errorf("unexpected padded row: %v", rows[0])
	}
	if len(rows[1]) != 3 {
		t.Errorf("expected full row untouched, got %d cells", len(rows[1]))
	}
}

func TestDropHeader(t *testing.T) {
	rows := DropHeader([][]string{{"header"}, {"data"}})
	if len(rows) != 1 || rows[0][0] != "data" {
		t.Errorf("unexpected rows after header drop: %v", rows)
	}
	if got := DropHeader(nil); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got %v", got)
	}
}
