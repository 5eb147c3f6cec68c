package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/felipin127/dashboard-analista-de-custos/internal/config"
	"github.com/felipin127/dashboard-analista-de-custos/internal/server/handlers"
	"github.com/felipin127/dashboard-analista-de-custos/internal/server/router"
	"github.com/felipin127/dashboard-analista-de-custos/internal/service/dashboard"
)

const salesCSV = "Venda,Cliente,Vendedor,Data,Pagamento,Valor\n" +
	"1,ANA,JOAO,05/01/2024 10:30,DINHEIRO,\"50,00\"\n" +
	"2,BRUNO,JOAO,06/01/2024 14:00,PIX,\"30,00\"\n"

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	svc := dashboard.NewService(config.SourcesConfig{}, nil, nil, nil)
	handler := handlers.NewDashboardHandler(svc, nil)
	return router.New(handler, nil)
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing multipart body failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadThenGeneralMetrics(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, "/upload/sales", "vendas.csv", salesCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on upload, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics/general", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on metrics, got %d", rec.Code)
	}

	var resp struct {
		TotalSales int `json:"total_sales"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if resp.TotalSales != 2 {
		t.Errorf("expected 2 sales, got %d", resp.TotalSales)
	}
}

func TestUploadRejectsMalformedSpreadsheet(t *testing.T) {
	engine := newTestEngine(t)

	broken := "Venda,Cliente,Vendedor,Data,Pagamento,Valor\n" +
		"1,ANA,JOAO,05/01/2024 10:30,PIX,\"1.234,56\"\n"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, "/upload/sales", "vendas.csv", broken))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for malformed amount, got %d", rec.Code)
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload/sales", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file field, got %d", rec.Code)
	}
}

func TestMetricsRejectInvalidDateFilter(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics/seasonality?from=05/01/2024", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid date, got %d", rec.Code)
	}
}

func TestMetricsDateWindowFiltersSales(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, uploadRequest(t, "/upload/sales", "vendas.csv", salesCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on upload, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshot?from=2024-01-06", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on snapshot, got %d", rec.Code)
	}

	var snap struct {
		General struct {
			TotalSales int `json:"total_sales"`
		} `json:"general"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decoding snapshot failed: %v", err)
	}
	if snap.General.TotalSales != 1 {
		t.Errorf("expected 1 sale inside window, got %d", snap.General.TotalSales)
	}
}

func TestHealthz(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on healthz, got %d", rec.Code)
	}
}
