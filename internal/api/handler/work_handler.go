package handler

import (
	"errors"
	"net/http"

	"workhub/internal/api/dto"
	"workhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type WorkHandler struct {
	workService service.WorkService
}

func NewWorkHandler(workService service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// List returns the catalog of works with their current ratings
// GET /api/v1/works
func (h *WorkHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	works, err := h.workService.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, works)
}

// Get returns a single work, rating included
// GET /api/v1/works/:work_id
func (h *WorkHandler) Get(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	work, err := h.workService.Get(workID)
	if err != nil {
		if errors.Is(err, service.ErrWorkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, work)
}

// Create adds a work to the catalog (admin only)
// POST /api/v1/works
func (h *WorkHandler) Create(c *gin.Context) {
	var req dto.CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	work, err := h.workService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrGenreNotFound),
			errors.Is(err, service.ErrInvalidYear):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, work)
}

// Update partially edits a work (admin only)
// PATCH /api/v1/works/:work_id
func (h *WorkHandler) Update(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	var req dto.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	work, err := h.workService.Update(workID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrGenreNotFound),
			errors.Is(err, service.ErrInvalidYear):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, work)
}

// Delete removes a work and its reviews (admin only)
// DELETE /api/v1/works/:work_id
func (h *WorkHandler) Delete(c *gin.Context) {
	workID, ok := pathID(c, "work_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work id"})
		return
	}

	if err := h.workService.Delete(workID); err != nil {
		if errors.Is(err, service.ErrWorkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
