package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workhub/internal/api/cache"
	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/repository"

	"gorm.io/gorm"
)

var ErrSlugTaken = errors.New("slug already in use")

const categoryCachePrefix = "categories:"

type CategoryService interface {
	Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(slug string) error
	List(page, pageSize int) (*dto.PaginatedCategoryResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
	logger       *slog.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, c *cache.Cache, logger *slog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        c,
		logger:       logger,
	}
}

func (s *categoryService) Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.invalidate()
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.categoryRepo.Delete(slug); err != nil {
		if repository.IsNotFound(err) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.invalidate()
	return nil
}

// List serves from the redis cache when possible; the cache only ever
// holds category listings, never ratings.
func (s *categoryService) List(page, pageSize int) (*dto.PaginatedCategoryResponse, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d:%d", categoryCachePrefix, page, pageSize)

	if s.cache != nil {
		var cached dto.PaginatedCategoryResponse
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	categories, total, err := s.categoryRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	categoryResponses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		categoryResponses = append(categoryResponses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	resp := dto.NewPaginatedCategoryResponse(categoryResponses, int(total), page, pageSize)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, resp); err != nil {
			s.logger.Warn("category_cache_set_failed", "error", err)
		}
	}
	return resp, nil
}

func (s *categoryService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.Background(), categoryCachePrefix); err != nil {
		s.logger.Warn("category_cache_invalidate_failed", "error", err)
	}
}
