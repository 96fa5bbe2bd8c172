package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
)

// CategoriesHandler lists service categories.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(categories, categoryResponse))
}
