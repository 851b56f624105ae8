package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopx/internal/model"
)

// articleSortClauses maps the public sortBy enumeration onto single-key
// ORDER BY clauses. Ties break by underlying storage order.
var articleSortClauses = map[string]string{
	"date-desc":  "published_at DESC",
	"date-asc":   "published_at ASC",
	"views-desc": "views DESC",
	"title-asc":  "title ASC",
	"title-desc": "title DESC",
}

// ArticleSortClause resolves a sortBy key to its ORDER BY clause.
func ArticleSortClause(key string) (string, bool) {
	clause, ok := articleSortClauses[key]
	return clause, ok
}

// ArticleFilter carries the optional filter parameters; absent fields
// impose no constraint and supplied ones AND-compose.
type ArticleFilter struct {
	Category string
	Author   string
	Tag      string
	Status   string
	From     *time.Time
	To       *time.Time
}

// ArticleRepository defines article persistence and list-query operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Save(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns published articles newest first, with skip/limit
	// pagination and the total published count.
	List(ctx context.Context, page, limit int) ([]model.Article, int64, error)
	// Search matches q case-insensitively as a substring of title, content,
	// category or tags. It deliberately does not restrict to published
	// articles, unlike List; see DESIGN.md.
	Search(ctx context.Context, q string) ([]model.Article, error)
	Filter(ctx context.Context, f ArticleFilter) ([]model.Article, error)
	// SortBy returns published articles ordered by an already-resolved
	// ORDER BY clause (see ArticleSortClause).
	SortBy(ctx context.Context, orderClause string) ([]model.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository builds a GORM-backed repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) Save(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Article{}).Error
}

func (r *articleRepository) List(ctx context.Context, page, limit int) ([]model.Article, int64, error) {
	baseline := r.db.WithContext(ctx).Model(&model.Article{}).Where("status = ?", model.StatusPublished)

	var total int64
	if err := baseline.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPublished).
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) Search(ctx context.Context, q string) ([]model.Article, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var articles []model.Article
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(category) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("published_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Filter(ctx context.Context, f ArticleFilter) ([]model.Article, error) {
	query := r.db.WithContext(ctx).Model(&model.Article{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Author != "" {
		query = query.Where("author = ?", f.Author)
	}
	if f.Tag != "" {
		// membership test against the JSON-serialized tag list
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", f.Tag)
	}
	if f.From != nil {
		query = query.Where("published_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("published_at <= ?", *f.To)
	}

	var articles []model.Article
	if err := query.Order("published_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) SortBy(ctx context.Context, orderClause string) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPublished).
		Order(orderClause).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}
