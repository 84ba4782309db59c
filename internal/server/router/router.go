package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mvuvi-group/pulse/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/report")
	{
		api.GET("", handler.Get)
		api.PUT("/records/:entityId", handler.UpdateRecord)
		api.PUT("/records/:entityId/kpis", handler.UpdateKPI)
		api.PUT("/cashflow", handler.UpdateCashflow)
		api.PUT("/priorities", handler.UpdatePriorities)
		api.PUT("/support", handler.UpdateSupportRequired)
		api.PUT("/esms", handler.UpdateESMS)
		api.PUT("/summary", handler.SetSummary)
		api.POST("/summary/generate", handler.GenerateSummary)
		api.GET("/export", handler.Export)
		api.GET("/preview", handler.Preview)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

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
