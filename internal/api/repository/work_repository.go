package repository

import (
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type WorkRepository interface {
	Create(work *models.Work) error
	Update(work *models.Work) error
	Delete(workID int64) error
	GetByID(workID int64) (*models.Work, error)
	List(page, pageSize int) ([]models.Work, int64, error)
	ReplaceGenres(work *models.Work, genres []models.Genre) error
}

type workRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

func (r *workRepository) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

func (r *workRepository) Delete(workID int64) error {
	result := r.db.Where("id = ?", workID).Delete(&models.Work{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workRepository) GetByID(workID int64) (*models.Work, error) {
	var work models.Work
	err := r.db.Where("id = ?", workID).
		Preload("Category").
		Preload("Genres").
		First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *workRepository) List(page, pageSize int) ([]models.Work, int64, error) {
	var works []models.Work
	var total int64

	if err := r.db.Model(&models.Work{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Preload("Category").
		Preload("Genres").
		Order("name ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&works).Error
	if err != nil {
		return nil, 0, err
	}

	return works, total, nil
}

func (r *workRepository) ReplaceGenres(work *models.Work, genres []models.Genre) error {
	return r.db.Model(work).Association("Genres").Replace(genres)
}
