package service

import (
	"context"

	"github.com/google/uuid"

	apperrors "shopx/internal/errors"
	"shopx/internal/model"
	"shopx/internal/repository"
)

// ArticleInput carries the fields for article creation. UploadedImages are
// the storage paths of files received with the request.
type ArticleInput struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	Author         string
	Category       string
	Tags           []string
	CoverImage     string
	Status         string
	UploadedImages []string
}

// ArticleUpdate carries the selective update; only non-nil fields
// overwrite existing values. Uploaded images replace the image list and
// re-run the cover-image rule.
type ArticleUpdate struct {
	Title          *string
	Slug           *string
	Excerpt        *string
	Content        *string
	Author         *string
	Category       *string
	Tags           *[]string
	CoverImage     *string
	Status         *string
	UploadedImages []string
}

// ArticleService handles the article collection.
type ArticleService interface {
	List(ctx context.Context, page, limit int) ([]model.Article, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Create(ctx context.Context, in ArticleInput) (*model.Article, error)
	Update(ctx context.Context, id uuid.UUID, in ArticleUpdate) (*model.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q string) ([]model.Article, error)
	Filter(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error)
	Sort(ctx context.Context, sortBy string) ([]model.Article, error)
}

type articleService struct {
	repo repository.ArticleRepository
}

// NewArticleService builds an ArticleService.
func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo}
}

func (s *articleService) List(ctx context.Context, page, limit int) ([]model.Article, int64, error) {
	articles, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperrors.Server("", err)
	}
	return articles, total, nil
}

func (s *articleService) Get(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "Article", id.String())
	}
	return article, nil
}

// Create persists a new article. Uploaded images become the image list and,
// when no explicit cover was supplied, the first of them becomes the cover.
func (s *articleService) Create(ctx context.Context, in ArticleInput) (*model.Article, error) {
	article := &model.Article{
		Title:      in.Title,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		Author:     in.Author,
		Category:   in.Category,
		Tags:       in.Tags,
		CoverImage: in.CoverImage,
		Status:     in.Status,
	}
	if in.Slug != "" {
		slug := in.Slug
		article.Slug = &slug
	}
	if len(in.UploadedImages) > 0 {
		article.Images = in.UploadedImages
		if article.CoverImage == "" {
			article.CoverImage = article.Images[0]
		}
	}
	if article.Status == "" {
		article.Status = model.StatusPublished
	}

	if msgs := article.Validate(); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs[0], msgs...)
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, apperrors.Translate(err, "Article", "")
	}
	return article, nil
}

// Update merges the provided fields and re-runs the image-attachment rule
// for any newly uploaded files.
func (s *articleService) Update(ctx context.Context, id uuid.UUID, in ArticleUpdate) (*model.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "Article", id.String())
	}

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Slug != nil {
		if *in.Slug == "" {
			article.Slug = nil
		} else {
			article.Slug = in.Slug
		}
	}
	if in.Excerpt != nil {
		article.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Author != nil {
		article.Author = *in.Author
	}
	if in.Category != nil {
		article.Category = *in.Category
	}
	if in.Tags != nil {
		article.Tags = *in.Tags
	}
	if in.CoverImage != nil {
		article.CoverImage = *in.CoverImage
	}
	if in.Status != nil {
		article.Status = *in.Status
	}
	if len(in.UploadedImages) > 0 {
		article.Images = in.UploadedImages
		if in.CoverImage == nil || *in.CoverImage == "" {
			article.CoverImage = article.Images[0]
		}
	}

	if msgs := article.Validate(); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs[0], msgs...)
	}
	if err := s.repo.Save(ctx, article); err != nil {
		return nil, apperrors.Translate(err, "Article", id.String())
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperrors.Translate(err, "Article", id.String())
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Translate(err, "Article", id.String())
	}
	return nil
}

func (s *articleService) Search(ctx context.Context, q string) ([]model.Article, error) {
	articles, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return articles, nil
}

func (s *articleService) Filter(ctx context.Context, f repository.ArticleFilter) ([]model.Article, error) {
	articles, err := s.repo.Filter(ctx, f)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return articles, nil
}

// Sort returns published articles in the total order named by sortBy.
func (s *articleService) Sort(ctx context.Context, sortBy string) ([]model.Article, error) {
	clause, ok := repository.ArticleSortClause(sortBy)
	if !ok {
		return nil, apperrors.Validation("Invalid sort parameter")
	}
	articles, err := s.repo.SortBy(ctx, clause)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return articles, nil
}
