package service

import (
	"fmt"
	"sync"
	"testing"

	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/permissions"
	"workhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(reviewID int64) error {
	args := m.Called(reviewID)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	args := m.Called(reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByWorkAndID(workID, reviewID int64) (*models.Review, error) {
	args := m.Called(workID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByWork(workID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(workID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AverageScore(workID int64) (float64, int64, error) {
	args := m.Called(workID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockWorkRepository mocks the WorkRepository interface
type MockWorkRepository struct {
	mock.Mock
}

func (m *MockWorkRepository) Create(work *models.Work) error {
	args := m.Called(work)
	return args.Error(0)
}

func (m *MockWorkRepository) Update(work *models.Work) error {
	args := m.Called(work)
	return args.Error(0)
}

func (m *MockWorkRepository) Delete(workID int64) error {
	args := m.Called(workID)
	return args.Error(0)
}

func (m *MockWorkRepository) GetByID(workID int64) (*models.Work, error) {
	args := m.Called(workID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Work), args.Error(1)
}

func (m *MockWorkRepository) List(page, pageSize int) ([]models.Work, int64, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Work), args.Get(1).(int64), args.Error(2)
}

func (m *MockWorkRepository) ReplaceGenres(work *models.Work, genres []models.Genre) error {
	args := m.Called(work, genres)
	return args.Error(0)
}

const authorID = "11111111-1111-1111-1111-111111111111"

func TestCreateReview_Success(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	mockWorkRepo.On("GetByID", int64(1)).Return(&models.Work{ID: 1, Name: "Dune"}, nil)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.Review).ID = 7 }).
		Return(nil)
	mockReviewRepo.On("GetByID", int64(7)).Return(&models.Review{
		ID:       7,
		WorkID:   1,
		AuthorID: authorID,
		Score:    8,
		Text:     "solid",
		Author:   models.User{ID: authorID, Username: "reader"},
	}, nil)

	review, err := reviewService.Create(1, authorID, 8, "solid")

	assert.NoError(t, err)
	assert.NotNil(t, review)
	assert.Equal(t, 8, review.Score)
	assert.Equal(t, "reader", review.Author)
	mockReviewRepo.AssertExpectations(t)
	mockWorkRepo.AssertExpectations(t)
}

// Score validation runs before any repository call.
func TestCreateReview_InvalidScore(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	for _, score := range []int{0, 11, -3} {
		review, err := reviewService.Create(1, authorID, score, "whatever")
		assert.ErrorIs(t, err, ErrInvalidScore)
		assert.Nil(t, review)
	}
	mockReviewRepo.AssertNotCalled(t, "Create")
	mockWorkRepo.AssertNotCalled(t, "GetByID")
}

func TestCreateReview_WorkNotFound(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	mockWorkRepo.On("GetByID", int64(404)).Return(nil, gorm.ErrRecordNotFound)

	review, err := reviewService.Create(404, authorID, 8, "ghost work")

	assert.ErrorIs(t, err, ErrWorkNotFound)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Create")
}

func TestCreateReview_Duplicate(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	mockWorkRepo.On("GetByID", int64(1)).Return(&models.Work{ID: 1}, nil)
	mockReviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
		Return(repository.ErrDuplicateReview)

	review, err := reviewService.Create(1, authorID, 9, "again")

	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.EqualError(t, err, "at most one review per work is allowed")
	assert.Nil(t, review)
}

// fakeReviewRepo enforces the (work_id, author_id) constraint atomically,
// the way the database index does, so the race below is meaningful.
type fakeReviewRepo struct {
	MockReviewRepository
	mu     sync.Mutex
	nextID int64
	seen   map[string]bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{seen: make(map[string]bool)}
}

func (f *fakeReviewRepo) Create(review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%d/%s", review.WorkID, review.AuthorID)
	if f.seen[key] {
		return repository.ErrDuplicateReview
	}
	f.seen[key] = true
	f.nextID++
	review.ID = f.nextID
	return nil
}

func (f *fakeReviewRepo) GetByID(reviewID int64) (*models.Review, error) {
	return &models.Review{ID: reviewID, Author: models.User{Username: "racer"}}, nil
}

// Two concurrent submissions for the same (work, author) resolve to
// exactly one success and one duplicate error.
func TestCreateReview_ConcurrentDuplicate(t *testing.T) {
	fakeRepo := newFakeReviewRepo()
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(fakeRepo, mockWorkRepo)

	mockWorkRepo.On("GetByID", int64(1)).Return(&models.Work{ID: 1}, nil)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reviewService.Create(1, authorID, 5, "racing")
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrDuplicateReview):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)
}

func TestUpdateReview_OwnerAllowed(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	stored := &models.Review{
		ID:       7,
		WorkID:   1,
		AuthorID: authorID,
		Score:    5,
		Text:     "first take",
		Author:   models.User{Username: "reader"},
	}
	mockReviewRepo.On("GetByWorkAndID", int64(1), int64(7)).Return(stored, nil)
	mockReviewRepo.On("Update", stored).Return(nil)

	owner := permissions.Actor{ID: authorID, Role: permissions.RoleUser, Authenticated: true}
	newScore := 9
	review, err := reviewService.Update(owner, 1, 7, dto.UpdateReviewDTO{Score: &newScore})

	assert.NoError(t, err)
	assert.Equal(t, 9, review.Score)
	assert.Equal(t, "first take", review.Text)
	mockReviewRepo.AssertExpectations(t)
}

func TestUpdateReview_NonOwnerForbidden(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	stored := &models.Review{ID: 7, WorkID: 1, AuthorID: authorID}
	mockReviewRepo.On("GetByWorkAndID", int64(1), int64(7)).Return(stored, nil)

	stranger := permissions.Actor{ID: "other-user", Role: permissions.RoleUser, Authenticated: true}
	newText := "hijack"
	review, err := reviewService.Update(stranger, 1, 7, dto.UpdateReviewDTO{Text: &newText})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, review)
	mockReviewRepo.AssertNotCalled(t, "Update")
}

func TestDeleteReview_ModeratorAllowed(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	stored := &models.Review{ID: 7, WorkID: 1, AuthorID: authorID}
	mockReviewRepo.On("GetByWorkAndID", int64(1), int64(7)).Return(stored, nil)
	mockReviewRepo.On("Delete", int64(7)).Return(nil)

	moderator := permissions.Actor{ID: "mod-user", Role: permissions.RoleModerator, Authenticated: true}
	err := reviewService.Delete(moderator, 1, 7)

	assert.NoError(t, err)
	mockReviewRepo.AssertExpectations(t)
}

func TestDeleteReview_NonOwnerForbidden(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	stored := &models.Review{ID: 7, WorkID: 1, AuthorID: authorID}
	mockReviewRepo.On("GetByWorkAndID", int64(1), int64(7)).Return(stored, nil)

	stranger := permissions.Actor{ID: "other-user", Role: permissions.RoleUser, Authenticated: true}
	err := reviewService.Delete(stranger, 1, 7)

	assert.ErrorIs(t, err, ErrForbidden)
	mockReviewRepo.AssertNotCalled(t, "Delete")
}

func TestGetReview_WrongWork(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockWorkRepo := new(MockWorkRepository)
	reviewService := NewReviewService(mockReviewRepo, mockWorkRepo)

	mockReviewRepo.On("GetByWorkAndID", int64(2), int64(7)).Return(nil, gorm.ErrRecordNotFound)

	review, err := reviewService.Get(2, 7)

	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.Nil(t, review)
}
