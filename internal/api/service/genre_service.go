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

const genreCachePrefix = "genres:"

type GenreService interface {
	Create(req dto.CreateGenreRequest) (*dto.GenreResponse, error)
	Delete(slug string) error
	List(page, pageSize int) (*dto.PaginatedGenreResponse, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
	cache     *cache.Cache
	logger    *slog.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, c *cache.Cache, logger *slog.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		cache:     c,
		logger:    logger,
	}
}

func (s *genreService) Create(req dto.CreateGenreRequest) (*dto.GenreResponse, error) {
	genre := &models.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.genreRepo.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.invalidate()
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.genreRepo.Delete(slug); err != nil {
		if repository.IsNotFound(err) {
			return ErrGenreNotFound
		}
		return err
	}

	s.invalidate()
	return nil
}

func (s *genreService) List(page, pageSize int) (*dto.PaginatedGenreResponse, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d:%d", genreCachePrefix, page, pageSize)

	if s.cache != nil {
		var cached dto.PaginatedGenreResponse
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	genres, total, err := s.genreRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	genreResponses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		genreResponses = append(genreResponses, *dto.FromModelToGenreResponse(&genres[i]))
	}
	resp := dto.NewPaginatedGenreResponse(genreResponses, int(total), page, pageSize)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, resp); err != nil {
			s.logger.Warn("genre_cache_set_failed", "error", err)
		}
	}
	return resp, nil
}

func (s *genreService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.Background(), genreCachePrefix); err != nil {
		s.logger.Warn("genre_cache_invalidate_failed", "error", err)
	}
}
