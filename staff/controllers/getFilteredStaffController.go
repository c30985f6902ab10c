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

const staffListCacheTTL = 5 * time.Minute

func (sc *StaffController) GetFilteredStaffController(c *fiber.Ctx) error {
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
	for _, key := range []string{"role", "department", "currency", "start_date", "end_date", "name"} {
		if value := cleanQueryParam(c.Query(key)); value != "" {
			filters[key] = value
		}
	}

	cacheKey := utils.GenerateQueryHash("staff", filters, page, pageSize)
	if sc.RedisClient != nil {
		if cached, err := sc.RedisClient.Get(context.Background(), cacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).SendString(cached)
		}
	}

	offset := (page - 1) * pageSize
	staff, total, err := sc.StaffRepo.GetFilteredStaff(pageSize, offset, filters)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated staff", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch staff"})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	response := fiber.Map{
		"data": staff,
		"meta": fiber.Map{
			"current_page": page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
		},
	}

	if sc.RedisClient != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := sc.RedisClient.Set(context.Background(), cacheKey, payload, staffListCacheTTL).Err(); err != nil {
				config.Logger.Warn("Failed to cache staff list", zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
