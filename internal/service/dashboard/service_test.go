package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/felipin127/dashboard-analista-de-custos/internal/config"
)

type fakeSheets struct {
	rows  [][]string
	calls int
}

func (f *fakeSheets) ReadRange(_ context.Context, _ string) ([][]string, error) {
	f.calls++
	return f.rows, nil
}

const salesCSV = "Venda,Cliente,Vendedor,Data,Pagamento,Valor\n" +
	"1,ANA,JOAO,05/01/2024 10:30,DINHEIRO,\"50,00\"\n" +
	"2,BRUNO,JOAO,06/01/2024 14:00,PIX,\"30,00\"\n"

func TestUploadSalesFeedsMetrics(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)

	if err := svc.UploadSales("vendas.csv", []byte(salesCSV)); err != nil {
		t.Fatalf("UploadSales failed: %v", err)
	}

	general := svc.General()
	if general.TotalSales != 2 {
		t.Fatalf("expected 2 sales, got %d", general.TotalSales)
	}
	if general.TotalRevenue.String() != "80" {
		t.Errorf("expected total revenue 80, got %s", general.TotalRevenue)
	}
	if general.AverageTicket.String() != "40" {
		t.Errorf("expected average ticket 40, got %s", general.AverageTicket)
	}
}

func TestUploadFailureKeepsPreviousTable(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)

	if err := svc.UploadSales("vendas.csv", []byte(salesCSV)); err != nil {
		t.Fatalf("UploadSales failed: %v", err)
	}

	broken := "Venda,Cliente,Vendedor,Data,Pagamento,Valor\n" +
		"3,CARLA,JOAO,07/01/2024 09:00,PIX,\"1.234,56\"\n"
	if err := svc.UploadSales("vendas.csv", []byte(broken)); err == nil {
		t.Fatal("expected error for malformed amount")
	}

	if got := svc.General().TotalSales; got != 2 {
		t.Errorf("expected previous table preserved with 2 sales, got %d", got)
	}
}

func TestUploadUnsupportedFormatNamesStage(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)

	err := svc.UploadSales("vendas.pdf", []byte("x"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRefreshFromSheetRange(t *testing.T) {
	sheets := &fakeSheets{rows: [][]string{
		{"Venda", "Cliente", "Vendedor", "Data", "Pagamento", "Valor"},
		{"1", "ANA", "JOAO", "05/01/2024 10:30", "DINHEIRO", "50,00"},
	}}
	sources := config.SourcesConfig{
		Sales: config.SourceConfig{SheetRange: "Vendas!A:F"},
	}
	svc := NewService(sources, sheets, nil, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if got := svc.General().TotalSales; got != 1 {
		t.Fatalf("expected 1 sale after refresh, got %d", got)
	}

	// Unchanged content is a no-op on the second pass.
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh failed: %v", err)
	}
	if sheets.calls != 2 {
		t.Errorf("expected source read on every refresh, got %d calls", sheets.calls)
	}
	if got := svc.General().TotalSales; got != 1 {
		t.Errorf("expected table unchanged, got %d sales", got)
	}
}

func TestRefreshWithoutConfiguredSources(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("expected nil error with no sources, got %v", err)
	}
}

func TestSnapshotStampsIdentity(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)
	fixed := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if err := svc.UploadSales("vendas.csv", []byte(salesCSV)); err != nil {
		t.Fatalf("UploadSales failed: %v", err)
	}

	snap := svc.Snapshot(time.Time{}, time.Time{})
	if snap.ID == "" {
		t.Error("expected snapshot id to be set")
	}
	if !snap.ComputedAt.Equal(fixed) {
		t.Errorf("expected computed_at %v, got %v", fixed, snap.ComputedAt)
	}
	if snap.General.TotalSales != 2 {
		t.Errorf("expected 2 sales in snapshot, got %d", snap.General.TotalSales)
	}
	if snap.Payments.Status != "ok" {
		t.Errorf("expected ok payments status, got %s", snap.Payments.Status)
	}

	other := svc.Snapshot(time.Time{}, time.Time{})
	if other.ID == snap.ID {
		t.Error("expected a fresh id per snapshot")
	}
}

func TestSnapshotDateWindow(t *testing.T) {
	svc := NewService(config.SourcesConfig{}, nil, nil, nil)
	if err := svc.UploadSales("vendas.csv", []byte(salesCSV)); err != nil {
		t.Fatalf("UploadSales failed: %v", err)
	}

	from := time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)
	snap := svc.Snapshot(from, time.Time{})
	if snap.General.TotalSales != 1 {
		t.Errorf("expected 1 sale inside window, got %d", snap.General.TotalSales)
	}
}
