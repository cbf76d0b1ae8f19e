package handler

import (
	"errors"
	"net/http"

	"workhub/internal/api/dto"
	"workhub/internal/api/middleware"
	"workhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List returns the reviews of a work
// GET /api/v1/works/:work_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	page, pageSize := pagination(c)

	reviews, err := h.reviewService.ListByWork(workID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrWorkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Get returns one review of a work
// GET /api/v1/works/:work_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	review, err := h.reviewService.Get(workID, reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, review)
}

// Create posts a review; a second review on the same work is rejected
// POST /api/v1/works/:work_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(workID, userID.(string), req.Score, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidScore), errors.Is(err, service.ErrDuplicateReview):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update edits a review; only the author, a moderator or an admin may
// PATCH /api/v1/works/:work_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(middleware.ActorFromContext(c), workID, reviewID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidScore):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review; only the author, a moderator or an admin may
// DELETE /api/v1/works/:work_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	if err := h.reviewService.Delete(middleware.ActorFromContext(c), workID, reviewID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
