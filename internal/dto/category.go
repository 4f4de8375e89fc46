package dto

import (
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name      string      `json:"name" binding:"required,max=100"`
	Flow      domain.Flow `json:"flow" binding:"required,oneof=INCOME EXPENSE"`
	ParentID  *string     `json:"parentID"`
	SortOrder *int        `json:"sortOrder" binding:"omitempty,min=0"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// The flow of a category never changes.
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,min=0"`
	IsActive  *bool   `json:"isActive"`
	Version   *int64  `json:"version"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Flow domain.Flow `form:"flow" binding:"omitempty,oneof=INCOME EXPENSE"`
}

type CategoryResponse struct {
	CategoryID string      `json:"categoryID"`
	Name       string      `json:"name"`
	Flow       domain.Flow `json:"flow"`
	ParentID   *string     `json:"parentID,omitempty"`
	SortOrder  int         `json:"sortOrder"`
	IsActive   bool        `json:"isActive"`
	Version    int64       `json:"version"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Flow:       c.Flow,
		ParentID:   c.ParentID,
		SortOrder:  c.SortOrder,
		IsActive:   c.IsActive,
		Version:    c.Version,
	}
}

func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
