package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/handlers"
	"github.com/Joules-bit-spec/student-portfolio/internal/media"
	"github.com/Joules-bit-spec/student-portfolio/internal/middleware"
	"github.com/Joules-bit-spec/student-portfolio/internal/monitoring"
	"github.com/Joules-bit-spec/student-portfolio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := utils.EnsureJWTReady(); err != nil {
		log.Fatal("JWT configuration error: ", err)
	}

	database.InitDB()
	defer database.CloseDB()
	database.CreateTables()

	if err := os.MkdirAll(media.UploadsBasePath(), 0o755); err != nil {
		log.Fatal("Failed to create uploads directory: ", err)
	}

	handlers.SetMonitoringService(monitoring.NewService(time.Now()))

	router := gin.Default()
	router.MaxMultipartMemory = media.MaxUploadSizeBytes()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.MaxBodySize(media.MaxUploadSizeBytes()))
	router.Use(monitoring.RequestMetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	router.POST("/register", handlers.Register)
	router.POST("/login", handlers.Login)
	router.GET("/logout", handlers.Logout)

	// Public portfolio surface, no authentication.
	router.GET("/portfolio/:username", handlers.PublicPortfolio)
	router.GET("/download_portfolio/:username", handlers.DownloadPortfolio)

	authenticated := router.Group("/")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/dashboard", handlers.Dashboard)
		authenticated.GET("/profile", handlers.GetProfile)
		authenticated.POST("/profile", handlers.UpdateProfile)
		authenticated.DELETE("/profile", handlers.DeleteProfile)
		authenticated.GET("/projects", handlers.ListOwnProjects)
		authenticated.POST("/projects", handlers.CreateProject)
		authenticated.GET("/projects/edit/:id", handlers.GetProjectForEdit)
		authenticated.POST("/projects/edit/:id", handlers.EditProject)
		authenticated.GET("/projects/delete/:id", handlers.DeleteProject)
		authenticated.GET("/admin", handlers.AdminDashboard)
	}

	monitor := router.Group("/monitoring")
	{
		monitor.GET("/status", handlers.MonitorStatus)
		monitor.GET("/storage", handlers.MonitorStorage)
		monitor.GET("/connections", handlers.MonitorConnections)
		monitor.GET("/runtime", handlers.MonitorRuntime)
		monitor.GET("/users", handlers.MonitorUsers)
		monitor.GET("/snapshot", handlers.MonitorSnapshot)
		monitor.GET("/all", handlers.MonitorAll)
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	log.Println("Student Portfolio API starting on :" + port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
