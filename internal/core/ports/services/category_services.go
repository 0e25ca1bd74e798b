package services

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
	"github.com/loooooooooogp/Account/internal/dto"
)

// CategorySvcFacade defines category operations.
type CategorySvcFacade interface {
	// CreateCategory creates a private category owned by the user.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// ListCategories retrieves the global presets plus the user's own categories.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// GetCategoryByID retrieves a category usable by the user (own or preset).
	GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)
}
