package service

import (
	"errors"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/permissions"
	"workhub/internal/api/repository"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidScore   = errors.New("score must be between 1 and 10")
	ErrForbidden      = errors.New("forbidden")

	// ErrDuplicateReview carries the fixed user-facing message required
	// for uniqueness violations, distinct from plain validation errors.
	ErrDuplicateReview = errors.New("at most one review per work is allowed")
)

type ReviewService interface {
	Create(workID int64, authorID string, score int, text string) (*dto.ReviewResponse, error)
	Update(actor permissions.Actor, workID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(actor permissions.Actor, workID, reviewID int64) error
	Get(workID, reviewID int64) (*dto.ReviewResponse, error)
	ListByWork(workID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	workRepo   repository.WorkRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, workRepo repository.WorkRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		workRepo:   workRepo,
	}
}

// Create submits a new review. Validation runs before any write; the
// database unique constraint on (work_id, author_id) is the only duplicate
// guard, so concurrent submissions for the same pair cannot both land.
func (s *reviewService) Create(workID int64, authorID string, score int, text string) (*dto.ReviewResponse, error) {
	if score < 1 || score > 10 {
		return nil, ErrInvalidScore
	}

	if _, err := s.workRepo.GetByID(workID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	review := &models.Review{
		WorkID:   workID,
		AuthorID: authorID,
		Score:    score,
		Text:     text,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	// Reload with author data
	created, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(created), nil
}

// Update edits score and/or text. Allowed for the author and for
// staff-equivalent roles; ownership itself never changes.
func (s *reviewService) Update(actor permissions.Actor, workID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getForWork(workID, reviewID)
	if err != nil {
		return nil, err
	}

	if !permissions.ResolveObject(actor, permissions.Unsafe, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			return nil, ErrInvalidScore
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(actor permissions.Actor, workID, reviewID int64) error {
	review, err := s.getForWork(workID, reviewID)
	if err != nil {
		return err
	}

	if !permissions.ResolveObject(actor, permissions.Unsafe, review.AuthorID) {
		return ErrForbidden
	}

	return s.reviewRepo.Delete(review.ID)
}

func (s *reviewService) Get(workID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getForWork(workID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) ListByWork(workID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.workRepo.GetByID(workID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByWork(workID, page, pageSize)
	if err != nil {
		return nil, err
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, *dto.FromModelToReviewResponse(&review))
	}

	return dto.NewPaginatedReviewResponse(reviewResponses, int(total), page, pageSize), nil
}

func (s *reviewService) getForWork(workID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByWorkAndID(workID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
