package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/subediaakash/zomato-mcp/internal/config"
	"github.com/subediaakash/zomato-mcp/internal/server/http/handlers"
	"github.com/subediaakash/zomato-mcp/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FoodOrderFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.CORSOrigins))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(facade))

	api.GET("/products", productHandler.List)
	api.GET("/products/:productId", productHandler.Get)

	api.GET("/orders", orderHandler.List)
	api.GET("/orders/recent", orderHandler.Recent)
	api.GET("/orders/:orderId", orderHandler.Get)
	api.POST("/orders", orderHandler.Create)
	api.PATCH("/orders/:orderId", orderHandler.Cancel)
	api.DELETE("/orders/:orderId", orderHandler.Delete)

	api.POST("/chat", chatHandler.Reply)

	return engine
}
