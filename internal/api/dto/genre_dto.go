package dto

import "workhub/internal/api/models"

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,max=35"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(genre *models.Genre) *GenreResponse {
	return &GenreResponse{
		Name: genre.Name,
		Slug: genre.Slug,
	}
}

// PaginatedGenreResponse for genre listings
type PaginatedGenreResponse struct {
	Data       []GenreResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedGenreResponse(data []GenreResponse, total, page, pageSize int) *PaginatedGenreResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedGenreResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
