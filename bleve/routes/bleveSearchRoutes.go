package routes

import (
	"school-records-backend/bleve/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, searchController *controllers.SearchController) {
	searchRoutes := app.Group("/search")
	searchRoutes.Get("/students", searchController.SearchStudentsController)
}
