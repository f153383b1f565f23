package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/maisonforma/storefront/internal/pkg/signature"
	"github.com/maisonforma/storefront/internal/server/http/handlers"
	"github.com/maisonforma/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, verifier *signature.Verifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	webhookHandler := handlers.NewWebhookHandler(verifier, facade, logger)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/payments/events", webhookHandler.Handle)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/admin/login", adminHandler.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateStatus)
	admin.PUT("/products/:id/stock", adminHandler.SetStock)
	admin.GET("/products/:id/stock", adminHandler.GetStock)

	return engine
}
