package routes

import (
	"reservapro-backend/config"
	"reservapro-backend/controllers"
	"reservapro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Reservation routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			// Workflow transitions
			customers.POST("/:id/check-store", controllers.CheckStore)
			customers.POST("/:id/confirm-stock", controllers.ConfirmStoreStock)
			customers.POST("/:id/reject-stock", controllers.RejectStoreStock)
			customers.POST("/:id/accept-transfer", controllers.AcceptTransfer)
			customers.POST("/:id/decline-transfer", controllers.DeclineTransfer)
			customers.POST("/:id/product-arrived", controllers.ProductArrived)
			customers.POST("/:id/complete", controllers.CompleteOrder)
			customers.POST("/:id/archive", controllers.ArchiveCustomer)
			customers.POST("/:id/restore", controllers.RestoreCustomer)
			customers.POST("/:id/reset", controllers.ResetCustomer)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// History routes
		history := api.Group("/history")
		{
			history.GET("/finalized", controllers.GetFinalizedHistory)
			history.GET("/archived", controllers.GetArchivedHistory)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Sales routes
		api.GET("/sales", controllers.GetSales)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateWorkspaceProfile)
			profile.PUT("/templates", controllers.UpdateMessageTemplate)
		}
	}

	return r
}
