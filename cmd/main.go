package main

import (
	"context"
	"log"

	"school-records-backend/config"
	"school-records-backend/middleware"
	"school-records-backend/utils"

	// Repositories
	staff_repositories "school-records-backend/staff/repositories"
	students_repositories "school-records-backend/students/repositories"

	// Routes
	import_routes "school-records-backend/imports/routes"
	staff_routes "school-records-backend/staff/routes"
	student_routes "school-records-backend/students/routes"

	// bleve
	bleveControllers "school-records-backend/bleve/controllers"
	bleveRepositories "school-records-backend/bleve/repositories"
	bleveRoutes "school-records-backend/bleve/routes"
	bleveServices "school-records-backend/bleve/services"

	import_services "school-records-backend/imports/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(import_services.MaxUploadBytes) + 1024,
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnv("PORT")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data" // Default for local development
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	// Initialize the mailer
	utils.InitializeMailer()

	mailer := utils.GetMailer()
	if mailer == nil {
		config.Logger.Fatal("Mailer not initialized")
		log.Fatalf("Mailer not initialized")
	}

	// Serve generated templates and error reports
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	studentRepo := students_repositories.NewStudentRepository(db)
	staffRepo := staff_repositories.NewStaffRepository(db)
	studentIndexRepo := bleveRepositories.NewStudentIndexRepository(bleveIndexingService, studentRepo)

	// Import pipeline
	recordStore := import_services.NewGormRecordStore(studentRepo, staffRepo)
	commitExecutor := import_services.NewCommitExecutor(recordStore, config.Logger)

	// Routes
	import_routes.ImportRouterInit(app, db, recordStore, commitExecutor, studentIndexRepo, redisClient)
	student_routes.StudentRouterInit(app, studentRepo, redisClient)
	staff_routes.StaffRouterInit(app, staffRepo, redisClient)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(studentIndexRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController)

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// Background cleanup tasks
	go utils.RunScheduledCleanup()

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
