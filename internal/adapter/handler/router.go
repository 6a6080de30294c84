package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fathom-relay/internal/infrastructure/metrics"
)

// Router holds all handlers
type Router struct {
	webhookHandler *WebhookHandler
	healthHandler  *HealthHandler
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewRouter creates a new router with all handlers. A nil metrics disables
// the /metrics endpoint.
func NewRouter(webhookHandler *WebhookHandler, healthHandler *HealthHandler, m *metrics.Metrics, logger *zap.Logger) *Router {
	return &Router{
		webhookHandler: webhookHandler,
		healthHandler:  healthHandler,
		metrics:        m,
		logger:         logger,
	}
}

// Setup configures the error handler and all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	// Health check endpoint
	e.GET("/health", rt.healthHandler.Health)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics.Handler()))
	}

	webhooks := e.Group("/webhook")
	webhooks.POST("/fathom", rt.webhookHandler.HandleFathomWebhook)
	webhooks.POST("/slack", rt.webhookHandler.HandleSlackWebhook)
}
