package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "shopx/internal/errors"
	"shopx/internal/model"
	"shopx/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *model.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Save(ctx context.Context, article *model.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) List(ctx context.Context, page, limit int) ([]model.Article, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) Search(ctx context.Context, q string) ([]model.Article, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *MockArticleRepository) Filter(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *MockArticleRepository) SortBy(ctx context.Context, orderClause string) ([]model.Article, error) {
	args := m.Called(ctx, orderClause)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func validArticleInput() ArticleInput {
	return ArticleInput{
		Title:    "A Title",
		Content:  "Some content",
		Author:   "An Author",
		Category: "Technology",
	}
}

func TestArticleService_Create(t *testing.T) {
	t.Run("uploaded images become the image list, first image the cover", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Article")).Return(nil)

		in := validArticleInput()
		in.UploadedImages = []string{"/uploads/a.jpg", "/uploads/b.jpg"}

		svc := NewArticleService(mockRepo)
		article, err := svc.Create(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, article.Images)
		assert.Equal(t, "/uploads/a.jpg", article.CoverImage)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit cover image wins over uploads", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Article")).Return(nil)

		in := validArticleInput()
		in.CoverImage = "/uploads/cover.jpg"
		in.UploadedImages = []string{"/uploads/a.jpg"}

		svc := NewArticleService(mockRepo)
		article, err := svc.Create(context.Background(), in)

		assert.NoError(t, err)
		assert.Equal(t, "/uploads/cover.jpg", article.CoverImage)
	})

	t.Run("missing title fails validation", func(t *testing.T) {
		in := validArticleInput()
		in.Title = ""

		svc := NewArticleService(new(MockArticleRepository))
		_, err := svc.Create(context.Background(), in)

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Equal(t, "Please add a title", appErr.Message)
	})
}

func TestArticleService_Update(t *testing.T) {
	articleID := uuid.New()

	t.Run("merges only provided fields", func(t *testing.T) {
		existing := &model.Article{
			ID:       articleID,
			Title:    "Old Title",
			Content:  "Old content",
			Author:   "An Author",
			Category: "Technology",
			Status:   model.StatusPublished,
		}
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, articleID).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, existing).Return(nil)

		newTitle := "New Title"
		svc := NewArticleService(mockRepo)
		article, err := svc.Update(context.Background(), articleID, ArticleUpdate{Title: &newTitle})

		assert.NoError(t, err)
		assert.Equal(t, "New Title", article.Title)
		assert.Equal(t, "Old content", article.Content)
	})

	t.Run("unknown article", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, articleID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewArticleService(mockRepo)
		_, err := svc.Update(context.Background(), articleID, ArticleUpdate{})

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	})
}

func TestArticleService_Delete(t *testing.T) {
	articleID := uuid.New()

	mockRepo := new(MockArticleRepository)
	mockRepo.On("FindByID", mock.Anything, articleID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewArticleService(mockRepo)
	err := svc.Delete(context.Background(), articleID)

	assert.Error(t, err)
	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	mockRepo.AssertExpectations(t)
}

func TestArticleService_Sort(t *testing.T) {
	t.Run("resolves the sort key to an order clause", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("SortBy", mock.Anything, "views DESC").Return([]model.Article{}, nil)

		svc := NewArticleService(mockRepo)
		_, err := svc.Sort(context.Background(), "views-desc")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown sort keys without touching the store", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)

		svc := NewArticleService(mockRepo)
		_, err := svc.Sort(context.Background(), "price-asc")

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Equal(t, "Invalid sort parameter", appErr.Message)
		mockRepo.AssertNotCalled(t, "SortBy")
	})
}
