package repository

import (
	"errors"

	"workhub/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateReview is returned by Create when the (work_id, author_id)
// unique constraint rejects the insert. The constraint, not any pre-check,
// is the guarantee: two concurrent inserts for the same pair resolve to
// exactly one success and one ErrDuplicateReview.
var ErrDuplicateReview = errors.New("duplicate review")

const uniqueViolationCode = "23505" // Postgres unique_violation

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(reviewID int64) error
	GetByID(reviewID int64) (*models.Review, error)
	GetByWorkAndID(workID, reviewID int64) (*models.Review, error)
	GetByWork(workID int64, page, pageSize int) ([]models.Review, int64, error)
	// AverageScore returns the mean score and review count for a work.
	// Computed by the database on every call; never cached.
	AverageScore(workID int64) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. The single INSERT is the atomic
// check-and-insert unit; a constraint violation maps to ErrDuplicateReview.
func (r *reviewRepository) Create(review *models.Review) error {
	err := r.db.Create(review).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReview
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateReview
	}
	return err
}

// Update saves score and text. Ownership never changes on update.
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(reviewID int64) error {
	result := r.db.Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", reviewID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByWorkAndID(workID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ? AND work_id = ?", reviewID, workID).
		Preload("Author").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByWork(workID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("work_id = ?", workID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("work_id = ?", workID).
		Preload("Author").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) AverageScore(workID int64) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(*) as count").
		Where("work_id = ?", workID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Count, nil
}
