package api

import (
	"net/http"

	"pantry-tracker/internal/config"
	"pantry-tracker/internal/handlers"
	"pantry-tracker/internal/service/inventory"
	"pantry-tracker/internal/websocket"

	"github.com/gin-gonic/gin"
)

func SetupRouter(svc *inventory.Service, hub *websocket.Hub, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	stockHandler := handlers.NewStockHandler(svc)
	shoppingHandler := handlers.NewShoppingHandler(svc)
	historyHandler := handlers.NewHistoryHandler(svc)
	snapshotHandler := handlers.NewSnapshotHandler(svc)
	wsHandler := handlers.NewWebSocketHandler(hub)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Stock table routes
		stock := api.Group("/stock")
		{
			stock.GET("", stockHandler.GetStock)
			stock.POST("", stockHandler.CreateItem)
			stock.PUT("/:id", stockHandler.UpdateItem)
			stock.DELETE("/:id", stockHandler.DeleteItem)
			stock.PUT("/:id/price", stockHandler.SetPrice)
			stock.PUT("/:id/manual-quantity", stockHandler.SetManualQuantity)
			stock.PUT("/:id/checked", stockHandler.SetChecked)

			// Purchase completion
			stock.POST("/:id/purchase", shoppingHandler.CompleteOne)
		}

		api.GET("/shopping-list", shoppingHandler.GetShoppingList)
		api.POST("/purchase-checked", shoppingHandler.CompleteChecked)

		// History routes
		history := api.Group("/history")
		{
			history.GET("", historyHandler.GetHistory)
			history.DELETE("", historyHandler.ClearHistory)
		}

		// Snapshot export/import
		snapshot := api.Group("/snapshot")
		{
			snapshot.GET("", snapshotHandler.Export)
			snapshot.POST("", snapshotHandler.Import)
		}

		api.GET("/ws/status", wsHandler.Status)
	}

	router.GET("/ws", wsHandler.HandleWebSocket)

	return router
}
