package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/garagehub/garagehub-api/config"
	"github.com/garagehub/garagehub-api/controllers"
	"github.com/garagehub/garagehub-api/logger"
	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Get().Sync() //nolint:errcheck

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	services.InitSequencer(cfg.SequencePadWidth)
	if _, err := services.InitS3Service(); err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrate keeps the schema in sync with the models
func migrate() error {
	return config.GetDB().AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Product{},
		&models.JobCard{},
		&models.JobCardItem{},
		&models.Invoice{},
		&models.Payment{},
		&models.Attachment{},
		&models.DocumentSequence{},
	)
}

// setupRouter builds the full route tree. Everything except the health check
// runs behind token validation, and every request passes through tenant
// resolution first.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Tenant-ID"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(middleware.ResolveTenant(cfg))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.GET("/me", controllers.GetMe)
			authed.POST("/me", controllers.CreateMe)

			authed.GET("/customers", controllers.ListCustomers)
			authed.POST("/customers", controllers.CreateCustomer)
			authed.GET("/customers/:id", controllers.GetCustomer)
			authed.PUT("/customers/:id", controllers.UpdateCustomer)
			authed.DELETE("/customers/:id", controllers.DeleteCustomer)

			authed.GET("/vehicles", controllers.ListVehicles)
			authed.POST("/vehicles", controllers.CreateVehicle)
			authed.GET("/vehicles/:id", controllers.GetVehicle)
			authed.PUT("/vehicles/:id", controllers.UpdateVehicle)
			authed.DELETE("/vehicles/:id", controllers.DeleteVehicle)

			authed.GET("/products", controllers.ListProducts)
			authed.POST("/products", controllers.CreateProduct)
			authed.GET("/products/:id", controllers.GetProduct)

			authed.GET("/job-cards", controllers.ListJobCards)
			authed.POST("/job-cards", controllers.CreateJobCard)
			authed.GET("/job-cards/:id", controllers.GetJobCard)
			authed.PATCH("/job-cards/:id/status", controllers.UpdateJobCardStatus)
			authed.PATCH("/job-cards/:id/discount", controllers.SetJobCardDiscount)
			authed.POST("/job-cards/:id/items", controllers.AddJobCardItem)
			authed.PUT("/job-cards/:id/items/:itemID", controllers.UpdateJobCardItem)
			authed.DELETE("/job-cards/:id/items/:itemID", controllers.RemoveJobCardItem)

			authed.GET("/invoices", controllers.ListInvoices)
			authed.POST("/invoices", controllers.CreateInvoice)
			authed.GET("/invoices/:id", controllers.GetInvoice)
			authed.POST("/invoices/:id/send", controllers.SendInvoice)
			authed.POST("/invoices/:id/cancel", controllers.CancelInvoice)

			authed.GET("/payments", controllers.ListPayments)
			authed.POST("/payments", controllers.CreatePayment)
			authed.PUT("/payments/:id", controllers.UpdatePayment)
			authed.DELETE("/payments/:id", controllers.DeletePayment)

			authed.POST("/attachments", controllers.CreateAttachment)
			authed.GET("/attachments/:id", controllers.GetAttachment)
			authed.DELETE("/attachments/:id", controllers.DeleteAttachment)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	status := gin.H{
		"success": true,
		"message": "GarageHub API is running",
	}

	db := config.GetDB()
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Ping(); err == nil {
				status["database"] = "connected"
			} else {
				status["database"] = "unreachable"
			}
		}
	}

	c.JSON(http.StatusOK, status)
}
