package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopx/internal/model"
)

// productSortClauses maps the public sortBy enumeration onto single-key
// ORDER BY clauses.
var productSortClauses = map[string]string{
	"price-asc":   "price ASC",
	"price-desc":  "price DESC",
	"rating-desc": "rating DESC",
	"name-asc":    "name ASC",
	"name-desc":   "name DESC",
}

// ProductSortClause resolves a sortBy key to its ORDER BY clause.
func ProductSortClause(key string) (string, bool) {
	clause, ok := productSortClauses[key]
	return clause, ok
}

// ProductFilter carries the optional filter parameters; absent fields
// impose no constraint and supplied ones AND-compose. Unsupplied range
// bounds are omitted, not defaulted.
type ProductFilter struct {
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *float64
}

// ProductRepository defines product persistence and list-query operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Save(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the full catalog in insertion order; products carry no
	// baseline visibility filter.
	List(ctx context.Context) ([]model.Product, error)
	// Search matches q case-insensitively as a substring of name,
	// description or category.
	Search(ctx context.Context, q string) ([]model.Product, error)
	Filter(ctx context.Context, f ProductFilter) ([]model.Product, error)
	SortBy(ctx context.Context, orderClause string) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Save(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Search(ctx context.Context, q string) ([]model.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Filter(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		query = query.Where("rating >= ?", *f.MinRating)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SortBy(ctx context.Context, orderClause string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order(orderClause).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
