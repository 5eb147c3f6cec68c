package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felipin127/dashboard-analista-de-custos/internal/service/dashboard"
)

const dateLayout = "2006-01-02"

// DashboardHandler exposes the upload and metric endpoints over HTTP.
type DashboardHandler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// UploadSales replaces the sales table from a multipart spreadsheet upload.
func (h *DashboardHandler) UploadSales(c *gin.Context) {
	h.upload(c, h.svc.UploadSales)
}

// UploadInventory replaces the inventory table from a multipart upload.
func (h *DashboardHandler) UploadInventory(c *gin.Context) {
	h.upload(c, h.svc.UploadInventory)
}

// UploadCashLog replaces the cash-log table from a multipart upload.
func (h *DashboardHandler) UploadCashLog(c *gin.Context) {
	h.upload(c, h.svc.UploadCashLog)
}

func (h *DashboardHandler) upload(c *gin.Context, apply func(name string, data []byte) error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("missing upload file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed opening upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed reading upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return
	}

	if err := apply(fileHeader.Filename, data); err != nil {
		h.logger.Warn("upload rejected", zap.String("file", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "loaded", "file": fileHeader.Filename})
}

// Refresh re-reads every configured source on demand.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("refresh failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// Snapshot returns the full aggregate bundle.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot(from, to))
}

// General returns the headline KPI cards.
func (h *DashboardHandler) General(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.General())
}

// Seasonality returns the hourly and weekday revenue reductions.
func (h *DashboardHandler) Seasonality(c *gin.Context) {
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Seasonality(from, to))
}

// Payments returns the payment-method aggregate.
func (h *DashboardHandler) Payments(c *gin.Context) {
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Payments(from, to))
}

// Stock returns the inventory health cards.
func (h *DashboardHandler) Stock(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stock())
}

// Capital returns the capital allocation tables.
func (h *DashboardHandler) Capital(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Capital())
}

// Retention returns the cohort retention analysis.
func (h *DashboardHandler) Retention(c *gin.Context) {
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Retention(from, to))
}

// CashLog returns the reconstructed register entries.
func (h *DashboardHandler) CashLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.svc.CashLog()})
}

// dateWindow parses the optional from/to query parameters. It writes the
// error response itself and reports ok=false on bad input.
func (h *DashboardHandler) dateWindow(c *gin.Context) (from, to time.Time, ok bool) {
	from, ok = h.parseDate(c, "from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok = h.parseDate(c, "to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *DashboardHandler) parseDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		h.logger.Warn("invalid date filter", zap.String("param", name), zap.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as " + dateLayout})
		return time.Time{}, false
	}
	return parsed, true
}
