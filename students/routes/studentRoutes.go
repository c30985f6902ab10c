package routes

import (
	"school-records-backend/students/controllers"
	"school-records-backend/students/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func StudentRouterInit(
	app *fiber.App,
	studentRepository repositories.StudentRepository,
	redisClient *redis.Client,
) {
	studentController := &controllers.StudentController{
		StudentRepo: studentRepository,
		RedisClient: redisClient,
	}

	studentRoutes := app.Group("/students")
	studentRoutes.Post("/", studentController.CreateStudentController)
	studentRoutes.Get("/", studentController.GetFilteredStudentsController)
}
