package controllers

import (
	"strings"

	"school-records-backend/config"
	"school-records-backend/db/models"
	"school-records-backend/staff/repositories"
	"school-records-backend/staff/services"
	"school-records-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StaffController struct {
	StaffRepo   repositories.StaffRepository
	RedisClient *redis.Client
}

func (sc *StaffController) CreateStaffController(c *fiber.Ctx) error {
	var staff models.StaffMember
	if err := c.BodyParser(&staff); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if message := services.ValidateStaffMember(&staff); message != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
	}

	staff.AddedVia = models.FormAddedViaType

	created, err := sc.StaffRepo.CreateStaffMember(&staff)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A staff member with this employee number already exists",
			})
		}
		config.Logger.Error("Failed to create staff member", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create staff member"})
	}

	if sc.RedisClient != nil {
		utils.InvalidateCacheAsync(sc.RedisClient, "staff")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Staff member created",
		"data":    created,
	})
}
