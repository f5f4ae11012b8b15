package routes

import (
	"time"

	"quesec-backend/handlers"
	"quesec-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	shopHandler := &handlers.ShopHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	variationHandler := &handlers.VariationHandler{DB: db}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// Storefront
		api.GET("/shop", shopHandler.ListProducts)
		api.GET("/shop/:slug", shopHandler.GetProductDetail)
		api.GET("/shop/:slug/:variation", shopHandler.GetProductDetail)

		// Public category routes
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
	}

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Product management
		admin.GET("/products", productHandler.GetProductsPaginated)
		admin.GET("/products/:id", productHandler.GetProduct)
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/:id/duplicate", productHandler.DuplicateProduct)

		// Product gallery
		admin.GET("/products/:id/images", productHandler.ListProductImages)
		admin.POST("/products/:id/images", productHandler.AddProductImage)
		admin.PUT("/products/:id/images/:imageID", productHandler.UpdateProductImage)
		admin.DELETE("/products/:id/images/:imageID", productHandler.DeleteProductImage)

		// Variations
		admin.GET("/products/:id/variations", variationHandler.ListVariations)
		admin.POST("/products/:id/variations", variationHandler.CreateVariation)
		admin.PUT("/variations/:id", variationHandler.UpdateVariation)
		admin.DELETE("/variations/:id", variationHandler.DeleteVariation)

		// Variation gallery
		admin.POST("/variations/:id/images", variationHandler.AddVariationImage)
		admin.DELETE("/variations/:id/images/:imageID", variationHandler.DeleteVariationImage)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
