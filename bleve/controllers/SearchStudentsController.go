package controllers

import (
	"school-records-backend/bleve/repositories"
	"school-records-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SearchController struct {
	StudentIndexRepo repositories.StudentIndexRepository
}

func NewSearchController(studentIndexRepo repositories.StudentIndexRepository) *SearchController {
	return &SearchController{
		StudentIndexRepo: studentIndexRepo,
	}
}

func (sc *SearchController) SearchStudentsController(c *fiber.Ctx) error {
	queryString := c.Query("q")
	if queryString == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'q' query parameter"})
	}

	size := c.QueryInt("size", 20)
	if size <= 0 || size > 100 {
		size = 20
	}

	hits, err := sc.StudentIndexRepo.SearchStudents(queryString, size)
	if err != nil {
		config.Logger.Error("Student search failed", zap.String("query", queryString), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Search failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  hits,
		"total": len(hits),
	})
}
