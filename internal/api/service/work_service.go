package service

import (
	"errors"
	"time"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/repository"
)

var (
	ErrWorkNotFound     = errors.New("work not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrInvalidYear      = errors.New("year must be positive and not in the future")
)

type WorkService interface {
	Create(req dto.CreateWorkRequest) (*dto.WorkResponse, error)
	Update(workID int64, req dto.UpdateWorkRequest) (*dto.WorkResponse, error)
	Delete(workID int64) error
	Get(workID int64) (*dto.WorkResponse, error)
	List(page, pageSize int) (*dto.PaginatedWorkResponse, error)
}

type workService struct {
	workRepo     repository.WorkRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
}

func NewWorkService(
	workRepo repository.WorkRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
) WorkService {
	return &workService{
		workRepo:     workRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *workService) Create(req dto.CreateWorkRequest) (*dto.WorkResponse, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	work := &models.Work{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(*req.Category)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		work.CategoryID = &category.ID
	}

	if len(req.Genres) > 0 {
		genres, err := s.resolveGenres(req.Genres)
		if err != nil {
			return nil, err
		}
		work.Genres = genres
	}

	if err := s.workRepo.Create(work); err != nil {
		return nil, err
	}
	return s.respond(work.ID)
}

func (s *workService) Update(workID int64, req dto.UpdateWorkRequest) (*dto.WorkResponse, error) {
	work, err := s.workRepo.GetByID(workID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		work.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		work.Year = *req.Year
	}
	if req.Description != nil {
		work.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(*req.Category)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		work.CategoryID = &category.ID
	}

	if err := s.workRepo.Update(work); err != nil {
		return nil, err
	}

	if req.Genres != nil {
		genres, err := s.resolveGenres(req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.workRepo.ReplaceGenres(work, genres); err != nil {
			return nil, err
		}
	}

	return s.respond(workID)
}

func (s *workService) Delete(workID int64) error {
	if err := s.workRepo.Delete(workID); err != nil {
		if repository.IsNotFound(err) {
			return ErrWorkNotFound
		}
		return err
	}
	return nil
}

func (s *workService) Get(workID int64) (*dto.WorkResponse, error) {
	work, err := s.workRepo.GetByID(workID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	rating, err := s.ratingOf(workID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToWorkResponse(work, rating), nil
}

func (s *workService) List(page, pageSize int) (*dto.PaginatedWorkResponse, error) {
	works, total, err := s.workRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	workResponses := make([]dto.WorkResponse, 0, len(works))
	for i := range works {
		rating, err := s.ratingOf(works[i].ID)
		if err != nil {
			return nil, err
		}
		workResponses = append(workResponses, *dto.FromModelToWorkResponse(&works[i], rating))
	}

	return dto.NewPaginatedWorkResponse(workResponses, int(total), page, pageSize), nil
}

// ratingOf computes the work's aggregate rating on every call: the mean of
// its review scores truncated toward zero (integer cast, not rounding),
// nil when no reviews exist. Deliberately uncached so reads are always
// fresh.
func (s *workService) ratingOf(workID int64) (*int, error) {
	avg, count, err := s.reviewRepo.AverageScore(workID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	rating := int(avg)
	return &rating, nil
}

func (s *workService) respond(workID int64) (*dto.WorkResponse, error) {
	work, err := s.workRepo.GetByID(workID)
	if err != nil {
		return nil, err
	}
	rating, err := s.ratingOf(workID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToWorkResponse(work, rating), nil
}

func (s *workService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func validateYear(year int) error {
	if year <= 0 || year > time.Now().Year() {
		return ErrInvalidYear
	}
	return nil
}
