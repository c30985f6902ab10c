package routes

import (
	"school-records-backend/staff/controllers"
	"school-records-backend/staff/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func StaffRouterInit(
	app *fiber.App,
	staffRepository repositories.StaffRepository,
	redisClient *redis.Client,
) {
	staffController := &controllers.StaffController{
		StaffRepo:   staffRepository,
		RedisClient: redisClient,
	}

	staffRoutes := app.Group("/staff")
	staffRoutes.Post("/", staffController.CreateStaffController)
	staffRoutes.Get("/", staffController.GetFilteredStaffController)
}
