// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/config"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/handlers"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	setupAuthRoutes(rg, db, cfg, log)
	setupStoreRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg, log)
	setupOrderRoutes(rg, db, redisClient, cfg, log)
	setupAdminRoutes(rg, db, redisClient, cfg, log)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg, log)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/language", authHandler.SetLanguage)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}
}

// setupStoreRoutes sets up store browsing and onboarding routes
func setupStoreRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	storeHandler := handlers.NewStoreHandler(db, cfg)

	stores := rg.Group("/stores")
	{
		stores.GET("", storeHandler.GetStores)
		stores.GET("/:id", storeHandler.GetStore)
		stores.GET("/:id/products", storeHandler.GetStoreProducts)
		stores.GET("/slug/:slug", storeHandler.GetStoreBySlug)
	}

	// Store onboarding applications are public
	rg.POST("/leads", storeHandler.CreateLead)
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg, log)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/can-add/:storeId", cartHandler.CanAddToCart)
	}
}

// setupOrderRoutes sets up order, checkout and receipt routes
func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, log)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg, log)
	receiptHandler := handlers.NewReceiptHandler(db, cfg, log)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/statuses", orderHandler.GetStatusPresentations)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)

		// Receipt lifecycle
		orders.POST("/:id/receipt", receiptHandler.GenerateReceipt)
		orders.GET("/:id/receipt", receiptHandler.DownloadReceipt)
	}

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.GET("/quote", checkoutHandler.GetQuote)
	}
}

// setupAdminRoutes sets up admin routes
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg, log)
	receiptHandler := handlers.NewReceiptHandler(db, cfg, log)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		orders := admin.Group("/orders")
		{
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.GET("/:id/receipt/pdf", receiptHandler.RenderReceiptPDF)
		}
	}
}
