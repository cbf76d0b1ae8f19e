package dto

import (
	"time"

	"workhub/internal/api/models"
)

// CreateReviewDTO for submitting a review. The score range is validated
// here and again in the service before any write.
type CreateReviewDTO struct {
	Score int    `json:"score" binding:"required,min=1,max=10"`
	Text  string `json:"text" binding:"required"`
}

// UpdateReviewDTO: author never changes on update.
type UpdateReviewDTO struct {
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
	Text  *string `json:"text,omitempty"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Score     int       `json:"score"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		Author:    review.Author.Username,
		Score:     review.Score,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
