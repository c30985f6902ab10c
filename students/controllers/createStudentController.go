package controllers

import (
	"strings"

	"school-records-backend/config"
	"school-records-backend/db/models"
	"school-records-backend/students/repositories"
	"school-records-backend/students/services"
	"school-records-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StudentController struct {
	StudentRepo repositories.StudentRepository
	RedisClient *redis.Client
}

func (sc *StudentController) CreateStudentController(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if message := services.ValidateStudent(&student); message != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
	}

	student.AddedVia = models.FormAddedViaType

	created, err := sc.StudentRepo.CreateStudent(&student)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A student with this admission number already exists",
			})
		}
		config.Logger.Error("Failed to create student", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create student"})
	}

	if sc.RedisClient != nil {
		utils.InvalidateCacheAsync(sc.RedisClient, "students")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created",
		"data":    created,
	})
}
