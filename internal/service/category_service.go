package service

import (
	"context"

	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository"
)

// CategoryService lists service categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
