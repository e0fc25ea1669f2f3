package routes

import (
	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/controllers"
	"github.com/TaxRx/battleborn-tax-sub001/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://app.battleborntax.com",
			"http://localhost:3000",
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
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/archive", controllers.ArchiveClient)
			clients.PUT("/:id/personal-years", controllers.UpsertPersonalYear)
			clients.POST("/:id/businesses", controllers.CreateBusiness)
			clients.GET("/:id/enrollments", controllers.ListEnrollments)
		}

		// Business routes
		businesses := api.Group("/businesses")
		{
			businesses.PUT("/:id", controllers.UpdateBusiness)
			businesses.PUT("/:id/years", controllers.UpsertBusinessYear)
		}

		// Tool enrollment routes
		enrollments := api.Group("/enrollments")
		{
			enrollments.POST("", controllers.EnrollClientInTool)
			enrollments.PUT("/:id/status", controllers.UpdateEnrollmentStatus)
		}

		// Report routes
		reports := api.Group("/reports")
		{
			reports.POST("", controllers.GenerateReport)
			reports.GET("/:yearId/:type", controllers.GetReport)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}

		// Admin session routes
		admin := api.Group("/admin", utils.RequireCapability(utils.WildcardAll))
		{
			admin.POST("/sessions/validate", controllers.ValidateAdminSession)
			admin.GET("/sessions", controllers.ListAdminSessions)
			admin.DELETE("/sessions/:id", controllers.RevokeAdminSession)
		}
	}

	return r
}
