package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"fitnesshub_backend/internal/database"
	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/internal/router"
	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	utils.InitLogger()
	utils.InitJWTSecret(utils.Getenv("JWT_SECRET", "dev-only-secret-change-me"))

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "fitnesshub_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "fitnesshub_password")
	dbName := utils.Getenv("DB_NAME", "fitnesshub_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbHost, "name": dbName})

	if staffEmail := os.Getenv("STAFF_EMAIL"); staffEmail != "" {
		db := database.GetDB()
		err := services.EnsureStaffAccount(db,
			repositories.NewAuthRepository(db), repositories.NewStaffRepository(db),
			staffEmail, os.Getenv("STAFF_PASSWORD"),
			utils.Getenv("STAFF_FIRST_NAME", "Front"), utils.Getenv("STAFF_LAST_NAME", "Desk"))
		if err != nil {
			log.Fatalf("Failed to provision staff account: %v", err)
		}
		utils.LogInfo("Staff account ensured", map[string]interface{}{"email": staffEmail})
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, database.GetDB())

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
