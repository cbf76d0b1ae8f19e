package service

import (
	"log/slog"
	"testing"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// The cache is optional; every path must work with it disabled.
func TestCreateCategory_Success(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockRepo, nil, slog.Default())

	mockRepo.On("Create", mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.Category).ID = 1 }).
		Return(nil)

	category, err := categoryService.Create(dto.CreateCategoryRequest{Name: "Books", Slug: "books"})

	assert.NoError(t, err)
	assert.Equal(t, "books", category.Slug)
	mockRepo.AssertExpectations(t)
}

func TestCreateCategory_SlugTaken(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockRepo, nil, slog.Default())

	mockRepo.On("Create", mock.AnythingOfType("*models.Category")).
		Return(gorm.ErrDuplicatedKey)

	category, err := categoryService.Create(dto.CreateCategoryRequest{Name: "Books", Slug: "books"})

	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.Nil(t, category)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockRepo, nil, slog.Default())

	mockRepo.On("Delete", "missing").Return(gorm.ErrRecordNotFound)

	err := categoryService.Delete("missing")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListCategories_NoCache(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockRepo, nil, slog.Default())

	mockRepo.On("List", 1, 20).Return([]models.Category{
		{ID: 1, Name: "Books", Slug: "books"},
		{ID: 2, Name: "Films", Slug: "films"},
	}, int64(2), nil)

	categories, err := categoryService.List(1, 20)

	assert.NoError(t, err)
	assert.Len(t, categories.Data, 2)
	assert.Equal(t, 2, categories.Total)
	mockRepo.AssertExpectations(t)
}
