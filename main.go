package main

import (
	"fmt"
	"log"
	"os"

	"reservapro-backend/config"
	"reservapro-backend/models"
	"reservapro-backend/notify"
	"reservapro-backend/routes"
	"reservapro-backend/services"

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
		&models.Workspace{},
		&models.Customer{},
		&models.MessageTemplate{},
		&models.NotificationLog{},
		&models.Sale{},
	)

	seedWorkspaces()
}

// seedWorkspaces creates the fixed store rows and their default message
// templates if they do not exist yet. Settings of existing rows are kept.
func seedWorkspaces() {
	for _, ws := range models.DefaultWorkspaces() {
		var existing models.Workspace
		if err := config.DB.First(&existing, "id = ?", ws.ID).Error; err == nil {
			continue
		}
		if err := config.DB.Create(&ws).Error; err != nil {
			log.Printf("Failed to seed workspace %s: %v", ws.ID, err)
			continue
		}
		for _, kind := range []models.MessageKind{
			models.KindStoreInquiry,
			models.KindTransferOffer,
			models.KindReadyForPickup,
		} {
			template := models.MessageTemplate{
				WorkspaceID: ws.ID,
				Kind:        kind,
				Body:        notify.DefaultBody(kind),
				IsActive:    true,
			}
			if err := config.DB.Create(&template).Error; err != nil {
				log.Printf("Failed to seed %s template for %s: %v", kind, ws.ID, err)
			}
		}
	}
}

func main() {

	sweep := services.NewSweepService(config.DB)
	sweep.StartScheduler()

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
