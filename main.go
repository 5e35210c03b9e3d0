package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/supplyline/supplyline-api/config"
	"github.com/supplyline/supplyline-api/controllers"
	"github.com/supplyline/supplyline-api/middleware"
	"github.com/supplyline/supplyline-api/models"
	"github.com/supplyline/supplyline-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Supplyline API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Vendor{},
		&models.Product{},
		&models.Connection{},
		&models.Order{},
		&models.OrderLine{},
		&models.SupportCase{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Image storage is optional; catalog image uploads return 503 when
	// no bucket is configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Printf("Image storage enabled (bucket %s)", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	// Seed demo accounts for local development
	if cfg.SeedDemoData {
		if err := seedDemoAccounts(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	router := setupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the gin engine with all middleware and routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// The mobile and web frontends run on their own origins
	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public endpoints
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/token", controllers.IssueToken)
		v1.GET("/suppliers", controllers.ListSuppliers)

		// Everything else requires a bearer token
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(cfg))
		{
			// Connections
			authed.POST("/links", controllers.RequestLink)
			authed.GET("/links/my-requests", controllers.ListMyLinks)
			authed.GET("/supplier/links", controllers.ListIncomingLinks)
			authed.PUT("/supplier/links/:id", controllers.RespondLink)

			// Supplier profile
			authed.GET("/supplier/profile", controllers.GetMyProfile)
			authed.PUT("/supplier/profile", controllers.UpdateMyProfile)

			// Catalog
			authed.POST("/products", controllers.CreateProduct)
			authed.GET("/products/my-catalog", controllers.ListMyCatalog)
			authed.PUT("/products/:id", controllers.UpdateProduct)
			authed.DELETE("/products/:id", controllers.DeleteProduct)
			authed.POST("/products/:id/image", controllers.UploadProductImage)
			authed.GET("/products/supplier/:id", controllers.SupplierCatalog)

			// Ordering
			authed.POST("/orders", controllers.PlaceOrder)
			authed.GET("/orders", controllers.ListMyOrders)
			authed.GET("/orders/:id", controllers.GetOrder)
			authed.GET("/supplier/orders", controllers.ListIncomingOrders)

			// Support cases
			authed.POST("/complaints", controllers.CreateCase)
			authed.GET("/complaints", controllers.ListMyCases)
			authed.PUT("/complaints/:id/escalate", controllers.EscalateCase)

			// Messaging
			authed.POST("/chat", controllers.SendMessage)
			authed.GET("/chat/:user_id", controllers.GetChatHistory)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Supplyline API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
