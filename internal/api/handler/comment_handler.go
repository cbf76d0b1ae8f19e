package handler

import (
	"errors"
	"net/http"

	"workhub/internal/api/dto"
	"workhub/internal/api/middleware"
	"workhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns the comments of a review
// GET /api/v1/works/:work_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	workID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	comments, err := h.commentService.ListByReview(workID, reviewID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Get returns one comment
// GET /api/v1/works/:work_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	workID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	comment, err := h.commentService.Get(workID, reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create posts a comment under a review
// POST /api/v1/works/:work_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	workID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(workID, reviewID, userID.(string), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment; only the author, a moderator or an admin may
// PATCH /api/v1/works/:work_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	workID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(middleware.ActorFromContext(c), workID, reviewID, commentID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment; only the author, a moderator or an admin may
// DELETE /api/v1/works/:work_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	workID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.commentService.Delete(middleware.ActorFromContext(c), workID, reviewID, commentID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrCommentNotFound):
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

// reviewPath parses the work/review ids shared by every comment route.
// On failure it writes the 400 itself and tells the caller to stop.
func reviewPath(c *gin.Context) (workID, reviewID int64, ok bool) {
	workID, ok = pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, false
	}
	return workID, reviewID, true
}
