package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felipin127/dashboard-analista-de-custos/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	upload := r.Group("/upload")
	{
		upload.POST("/sales", handler.UploadSales)
		upload.POST("/inventory", handler.UploadInventory)
		upload.POST("/cashlog", handler.UploadCashLog)
	}

	api := r.Group("/api")
	{
		api.POST("/refresh", handler.Refresh)
		api.GET("/snapshot", handler.Snapshot)
		api.GET("/cashlog", handler.CashLog)

		metrics := api.Group("/metrics")
		{
			metrics.GET("/general", handler.General)
			metrics.GET("/seasonality", handler.Seasonality)
			metrics.GET("/payments", handler.Payments)
			metrics.GET("/stock", handler.Stock)
			metrics.GET("/capital", handler.Capital)
			metrics.GET("/retention", handler.Retention)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
