package dto

import "workhub/internal/api/models"

// CreateWorkRequest addresses category and genres by slug, matching the
// catalog's public identifiers.
type CreateWorkRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// UpdateWorkRequest: partial update; absent fields stay untouched.
type UpdateWorkRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// WorkResponse embeds the aggregate rating: the truncated mean of review
// scores, or null when the work has no reviews yet.
type WorkResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Genres      []GenreResponse   `json:"genres"`
}

func FromModelToWorkResponse(work *models.Work, rating *int) *WorkResponse {
	resp := &WorkResponse{
		ID:          work.ID,
		Name:        work.Name,
		Year:        work.Year,
		Rating:      rating,
		Description: work.Description,
		Genres:      make([]GenreResponse, 0, len(work.Genres)),
	}
	if work.Category != nil {
		resp.Category = FromModelToCategoryResponse(work.Category)
	}
	for _, genre := range work.Genres {
		resp.Genres = append(resp.Genres, *FromModelToGenreResponse(&genre))
	}
	return resp
}

// PaginatedWorkResponse for work listings
type PaginatedWorkResponse struct {
	Data       []WorkResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedWorkResponse(data []WorkResponse, total, page, pageSize int) *PaginatedWorkResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedWorkResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
