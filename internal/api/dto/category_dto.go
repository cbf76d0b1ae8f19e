package dto

import "workhub/internal/api/models"

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=35"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		Name: category.Name,
		Slug: category.Slug,
	}
}

// PaginatedCategoryResponse for category listings
type PaginatedCategoryResponse struct {
	Data       []CategoryResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func NewPaginatedCategoryResponse(data []CategoryResponse, total, page, pageSize int) *PaginatedCategoryResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedCategoryResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
