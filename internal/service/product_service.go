package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "shopx/internal/errors"
	"shopx/internal/model"
	"shopx/internal/repository"
)

// ProductInput carries the fields for product creation.
type ProductInput struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	Category       string
	ProductLink    string
	Rating         float64
	UploadedImages []string
}

// ProductUpdate carries the selective update; only non-nil fields
// overwrite existing values.
type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	Category       *string
	ProductLink    *string
	Rating         *float64
	UploadedImages []string
}

// ProductService handles the product catalog. Update and Delete perform
// their role check internally, after the existence check, and report a
// role failure as 401 — that exact contract is preserved deliberately.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Update(ctx context.Context, caller *model.User, id uuid.UUID, in ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, caller *model.User, id uuid.UUID) error
	Search(ctx context.Context, q string) ([]model.Product, error)
	Filter(ctx context.Context, f repository.ProductFilter) ([]model.Product, error)
	Sort(ctx context.Context, sortBy string) ([]model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService builds a ProductService.
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "Product", id.String())
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Images:      in.UploadedImages,
		ProductLink: in.ProductLink,
		Rating:      in.Rating,
	}
	if msgs := product.Validate(); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs[0], msgs...)
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Translate(err, "Product", "")
	}
	return product, nil
}

// Update loads the target first, then requires the caller to be an admin.
// A missing product and an insufficient role both answer 401 here.
func (s *productService) Update(ctx context.Context, caller *model.User, id uuid.UUID, in ProductUpdate) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Unauthorized("Product not found")
	}
	if !caller.IsAdmin() {
		return nil, apperrors.Unauthorized("User is not authorized to update this product")
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.ProductLink != nil {
		product.ProductLink = *in.ProductLink
	}
	if in.Rating != nil {
		product.Rating = *in.Rating
	}
	if len(in.UploadedImages) > 0 {
		product.Images = in.UploadedImages
	}

	if msgs := product.Validate(); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs[0], msgs...)
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, apperrors.Translate(err, "Product", id.String())
	}
	return product, nil
}

// Delete checks existence (404) before the role gate (401), in that order.
func (s *productService) Delete(ctx context.Context, caller *model.User, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperrors.Translate(err, "Product", id.String())
	}
	if !caller.IsAdmin() {
		return apperrors.Unauthorized("User is not authorized to delete this product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Translate(err, "Product", id.String())
	}
	return nil
}

func (s *productService) Search(ctx context.Context, q string) ([]model.Product, error) {
	products, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return products, nil
}

func (s *productService) Filter(ctx context.Context, f repository.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.Filter(ctx, f)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return products, nil
}

func (s *productService) Sort(ctx context.Context, sortBy string) ([]model.Product, error) {
	clause, ok := repository.ProductSortClause(sortBy)
	if !ok {
		return nil, apperrors.Validation("Invalid sort parameter")
	}
	products, err := s.repo.SortBy(ctx, clause)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return products, nil
}
