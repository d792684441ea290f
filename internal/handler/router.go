package handler

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"order-tracker/internal/config"
	"order-tracker/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(orderHandler *OrderHandler, limiter ratelimit.Limiter, cfg *config.Config, log *slog.Logger) (*gin.Engine, error) {
	router := gin.New()
	// ClientIP keys the rate limiter: forwarded headers count only from listed proxies
	if err := router.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.TrustedPlatform = cfg.HTTP.TrustedPlatform

	router.Use(gin.Recovery())
	router.Use(RequestID())
	// service name under which traces show up in the collector
	router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	router.Use(RequestLogger(log))
	router.Use(MetricsMiddleware())
	router.Use(CORS(cfg.HTTP.AllowedOrigins))

	router.Static("/static", cfg.HTTP.StaticDir)
	router.StaticFile("/", filepath.Join(cfg.HTTP.StaticDir, "index.html"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	lookup := RateLimit(limiter, log)
	router.POST("/search-order", lookup, orderHandler.SearchOrderHandler)

	api := router.Group("/api")
	{
		api.GET("/health", orderHandler.HealthHandler)
		api.POST("/search-order", lookup, orderHandler.SearchOrderHandler)

		if cfg.Features.DebugEndpoints {
			api.GET("/debug-token", orderHandler.DebugTokenHandler)
			api.GET("/test-api-versions", orderHandler.TestAPIVersionsHandler)
			api.GET("/debug-orders/:email", orderHandler.DebugOrdersHandler)
		}
		if cfg.Features.StatusUpdate {
			api.POST("/update-status", orderHandler.UpdateStatusHandler)
		}
	}
	if cfg.Features.StatusUpdate {
		router.POST("/update-status", orderHandler.UpdateStatusHandler)
	}

	router.NoRoute(notFoundHandler)
	return router, nil
}
