package dto

import (
	"github.com/loooooooooogp/Account/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name string                 `json:"name" binding:"required,max=64"`
	Type domain.TransactionType `json:"type" binding:"required,txtype"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string                 `json:"categoryID"`
	Name       string                 `json:"name"`
	Type       domain.TransactionType `json:"type"`
	IsPreset   bool                   `json:"isPreset"` // true for global presets
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		IsPreset:   c.OwnerUserID == nil,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to CategoryResponse DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
