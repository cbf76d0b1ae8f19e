package service

import (
	"errors"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/permissions"
	"workhub/internal/api/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	Create(workID, reviewID int64, authorID, text string) (*dto.CommentResponse, error)
	Update(actor permissions.Actor, workID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(actor permissions.Actor, workID, reviewID, commentID int64) error
	Get(workID, reviewID, commentID int64) (*dto.CommentResponse, error)
	ListByReview(workID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// Create adds a comment under a review. Unlike reviews there is no
// uniqueness rule: an author may comment any number of times.
func (s *commentService) Create(workID, reviewID int64, authorID, text string) (*dto.CommentResponse, error) {
	if err := s.checkReview(workID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with author data
	created, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(created), nil
}

func (s *commentService) Update(actor permissions.Actor, workID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(workID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !permissions.ResolveObject(actor, permissions.Unsafe, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(actor permissions.Actor, workID, reviewID, commentID int64) error {
	comment, err := s.getForReview(workID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !permissions.ResolveObject(actor, permissions.Unsafe, comment.AuthorID) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(comment.ID)
}

func (s *commentService) Get(workID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getForReview(workID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) ListByReview(workID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if err := s.checkReview(workID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comment))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, int(total), page, pageSize), nil
}

// checkReview verifies the review exists and belongs to the given work.
func (s *commentService) checkReview(workID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByWorkAndID(workID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) getForReview(workID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(workID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByReviewAndID(reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}
