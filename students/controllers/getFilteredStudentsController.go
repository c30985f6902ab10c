package controllers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"school-records-backend/config"
	"school-records-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const studentListCacheTTL = 5 * time.Minute

func (sc *StudentController) GetFilteredStudentsController(c *fiber.Ctx) error {
	pageSize := c.QueryInt("page_size", 10)
	if pageSize <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page_size parameter"})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid page parameter"})
	}

	cleanQueryParam := func(param string) string {
		param = strings.TrimSpace(param)
		if param == "" || strings.ToLower(param) == "null" {
			return ""
		}
		return param
	}

	filters := make(map[string]string)
	for _, key := range []string{"class_level", "gender", "boarding", "start_date", "end_date", "name", "created_by"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	// Cached list responses are invalidated whenever a commit or single
	// create touches the students table.
	cacheKey := utils.GenerateQueryHash("students", filters, page, pageSize)
	if sc.RedisClient != nil {
		if cached, err := sc.RedisClient.Get(context.Background(), cacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).SendString(cached)
		}
	}

	offset := (page - 1) * pageSize
	students, total, err := sc.StudentRepo.GetFilteredStudents(pageSize, offset, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated students", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	response := fiber.Map{
		"data": students,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	}

	if sc.RedisClient != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := sc.RedisClient.Set(context.Background(), cacheKey, payload, studentListCacheTTL).Err(); err != nil {
				config.Logger.Warn("Failed to cache student list", zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
