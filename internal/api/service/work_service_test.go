package service

import (
	"testing"
	"time"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(genre *models.Genre) error {
	args := m.Called(genre)
	return args.Error(0)
}

func (m *MockGenreRepository) Delete(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func (m *MockGenreRepository) GetBySlug(slug string) (*models.Genre, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetBySlugs(slugs []string) ([]models.Genre, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) List(page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func newWorkServiceWithRating(t *testing.T, avg float64, count int64) WorkService {
	t.Helper()
	mockWorkRepo := new(MockWorkRepository)
	mockReviewRepo := new(MockReviewRepository)

	mockWorkRepo.On("GetByID", int64(1)).Return(&models.Work{ID: 1, Name: "Dune", Year: 1965}, nil)
	mockReviewRepo.On("AverageScore", int64(1)).Return(avg, count, nil)

	return NewWorkService(mockWorkRepo, new(MockCategoryRepository), new(MockGenreRepository), mockReviewRepo)
}

// The aggregate rating is the mean truncated toward zero, not rounded:
// one score of 10 gives 10, scores 1 and 2 give 1, scores 7 8 9 give 8.
func TestGetWork_RatingTruncation(t *testing.T) {
	cases := []struct {
		name   string
		avg    float64
		count  int64
		rating int
	}{
		{"SingleReview", 10.0, 1, 10},
		{"TruncatesDown", 1.5, 2, 1},
		{"ExactMean", 8.0, 3, 8},
		{"NeverRoundsUp", 9.9, 10, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			workService := newWorkServiceWithRating(t, tc.avg, tc.count)

			work, err := workService.Get(1)

			assert.NoError(t, err)
			assert.NotNil(t, work.Rating)
			assert.Equal(t, tc.rating, *work.Rating)
		})
	}
}

func TestGetWork_NoReviewsNilRating(t *testing.T) {
	workService := newWorkServiceWithRating(t, 0, 0)

	work, err := workService.Get(1)

	assert.NoError(t, err)
	assert.Nil(t, work.Rating)
}

func TestGetWork_NotFound(t *testing.T) {
	mockWorkRepo := new(MockWorkRepository)
	workService := NewWorkService(mockWorkRepo, new(MockCategoryRepository), new(MockGenreRepository), new(MockReviewRepository))

	mockWorkRepo.On("GetByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	work, err := workService.Get(404)

	assert.ErrorIs(t, err, ErrWorkNotFound)
	assert.Nil(t, work)
}

func TestCreateWork_FutureYear(t *testing.T) {
	workService := NewWorkService(new(MockWorkRepository), new(MockCategoryRepository), new(MockGenreRepository), new(MockReviewRepository))

	work, err := workService.Create(dto.CreateWorkRequest{
		Name: "From The Future",
		Year: time.Now().Year() + 1,
	})

	assert.ErrorIs(t, err, ErrInvalidYear)
	assert.Nil(t, work)
}

func TestCreateWork_UnknownCategory(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	workService := NewWorkService(new(MockWorkRepository), mockCategoryRepo, new(MockGenreRepository), new(MockReviewRepository))

	mockCategoryRepo.On("GetBySlug", "missing").Return(nil, gorm.ErrRecordNotFound)

	slug := "missing"
	work, err := workService.Create(dto.CreateWorkRequest{
		Name:     "Dune",
		Year:     1965,
		Category: &slug,
	})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, work)
}

func TestCreateWork_UnknownGenre(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	workService := NewWorkService(new(MockWorkRepository), new(MockCategoryRepository), mockGenreRepo, new(MockReviewRepository))

	// one of the two slugs resolves, so the count mismatch rejects the set
	mockGenreRepo.On("GetBySlugs", []string{"sci-fi", "unknown"}).
		Return([]models.Genre{{ID: 1, Name: "Sci-Fi", Slug: "sci-fi"}}, nil)

	work, err := workService.Create(dto.CreateWorkRequest{
		Name:   "Dune",
		Year:   1965,
		Genres: []string{"sci-fi", "unknown"},
	})

	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.Nil(t, work)
}

func TestCreateWork_Success(t *testing.T) {
	mockWorkRepo := new(MockWorkRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	workService := NewWorkService(mockWorkRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo)

	slug := "book"
	mockCategoryRepo.On("GetBySlug", "book").Return(&models.Category{ID: 3, Name: "Book", Slug: "book"}, nil)
	mockGenreRepo.On("GetBySlugs", []string{"sci-fi"}).
		Return([]models.Genre{{ID: 1, Name: "Sci-Fi", Slug: "sci-fi"}}, nil)
	mockWorkRepo.On("Create", mock.AnythingOfType("*models.Work")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.Work).ID = 1 }).
		Return(nil)
	mockWorkRepo.On("GetByID", int64(1)).Return(&models.Work{
		ID:     1,
		Name:   "Dune",
		Year:   1965,
		Genres: []models.Genre{{ID: 1, Name: "Sci-Fi", Slug: "sci-fi"}},
	}, nil)
	mockReviewRepo.On("AverageScore", int64(1)).Return(0.0, int64(0), nil)

	work, err := workService.Create(dto.CreateWorkRequest{
		Name:     "Dune",
		Year:     1965,
		Category: &slug,
		Genres:   []string{"sci-fi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Dune", work.Name)
	assert.Nil(t, work.Rating)
	mockWorkRepo.AssertExpectations(t)
}
