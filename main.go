package main

import (
	"fmt"
	"log"
	"os"

	"github.com/TaxRx/battleborn-tax-sub001/config"
	"github.com/TaxRx/battleborn-tax-sub001/controllers"
	"github.com/TaxRx/battleborn-tax-sub001/models"
	"github.com/TaxRx/battleborn-tax-sub001/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.PersonalYear{},
		&models.Business{},
		&models.BusinessYear{},
		&models.RDBusiness{},
		&models.ToolEnrollment{},
		&models.AccountLink{},
		&models.ReportDocument{},
		&models.AdminSession{},
		&models.SecurityEvent{},
	)

	controllers.InitServices(config.DB)
}

func main() {
	controllers.SessionService().StartSweeper()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
