package api

import (
	"net/http"
	"time"

	"sales_manager/internal/sales"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// InitRoutes registers the sales CRUD endpoints on the given Gin engine and
// binds each HTTP method and path to the handler that drives salesService.
func InitRoutes(e *gin.Engine, salesService *sales.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	salesHandler := NewSalesHandler(salesService, logger)

	e.Use(requestLogger(logger))

	e.GET("/sales", salesHandler.handleListSales)
	e.POST("/sales", salesHandler.handleCreateSale)
	e.POST("/sales/reset", salesHandler.handleResetSales)
	e.GET("/sales/:id", salesHandler.handleGetSale)
	e.PUT("/sales/:id", salesHandler.handleUpdateSale)
	e.DELETE("/sales/:id", salesHandler.handleDeleteSale)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	e.GET("/metrics", func(c *gin.Context) {
		metrics.WritePrometheus(c.Writer, false)
	})
}

// requestLogger tags each request with an X-Request-ID and logs its outcome.
// A client-supplied id is kept only when it is a valid uuid.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		if parsed, err := uuid.Parse(c.GetHeader("X-Request-ID")); err == nil {
			id = parsed.String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.Info("request handled",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
