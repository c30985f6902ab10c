package routes

import (
	bleveRepositories "school-records-backend/bleve/repositories"
	"school-records-backend/imports/controllers"
	"school-records-backend/imports/repositories"
	"school-records-backend/imports/services"
	"school-records-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func ImportRouterInit(
	app *fiber.App,
	db *gorm.DB,
	store services.RecordStore,
	executor *services.CommitExecutor,
	bleveRepo bleveRepositories.StudentIndexRepository,
	redisClient *redis.Client,
) {
	importController := &controllers.ImportController{
		Store:       store,
		Executor:    executor,
		ErrorRepo:   repositories.NewImportErrorRepository(db),
		BleveRepo:   bleveRepo,
		RedisClient: redisClient,
	}

	importRoutes := app.Group("/imports")
	importRoutes.Get("/:entityType/template", importController.GetImportTemplateController)
	importRoutes.Post("/:entityType/preview", middleware.UploadRateLimit(), importController.PreviewImportController)
	importRoutes.Post("/:entityType/execute", importController.ExecuteImportController)
	importRoutes.Post("/errors/report", importController.ExportErrorReportController)
}
