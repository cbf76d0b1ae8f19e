package repository

import (
	"workhub/internal/api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *models.Genre) error
	Delete(slug string) error
	GetBySlug(slug string) (*models.Genre, error)
	GetBySlugs(slugs []string) ([]models.Genre, error)
	List(page, pageSize int) ([]models.Genre, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *genreRepository) Delete(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&models.Genre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *genreRepository) GetBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) List(page, pageSize int) ([]models.Genre, int64, error) {
	var genres []models.Genre
	var total int64

	if err := r.db.Model(&models.Genre{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("slug ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}
