package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "shopx/internal/errors"
	"shopx/internal/middleware"
	"shopx/internal/repository"
	"shopx/internal/service"
)

// ProductHandler handles the product catalog endpoints.
type ProductHandler struct {
	products  service.ProductService
	uploadDir string
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{products: products, uploadDir: uploadDir}
}

// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} Envelope
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(products), products))
}

// Get godoc
// @Summary Get a single product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(product))
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /products/create [post]
func (h *ProductHandler) Create(c echo.Context) error {
	uploaded, err := saveUploadedImages(c, h.uploadDir)
	if err != nil {
		return err
	}

	in := service.ProductInput{
		Name:           c.FormValue("name"),
		Description:    c.FormValue("description"),
		Category:       c.FormValue("category"),
		ProductLink:    c.FormValue("productLink"),
		UploadedImages: uploaded,
	}

	priceRaw := c.FormValue("price")
	if priceRaw == "" {
		return apperrors.Validation("Please add a price")
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return apperrors.Validation("Price must be a number")
	}
	in.Price = price

	if raw := c.FormValue("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.Validation("Rating must be a number")
		}
		in.Rating = rating
	}

	product, err := h.products.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataEnvelope(product))
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /products/update/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	uploaded, err := saveUploadedImages(c, h.uploadDir)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return apperrors.Validation("Invalid request body")
	}

	in := service.ProductUpdate{
		Name:           formField(params, "name"),
		Description:    formField(params, "description"),
		Category:       formField(params, "category"),
		ProductLink:    formField(params, "productLink"),
		UploadedImages: uploaded,
	}
	if raw := formField(params, "price"); raw != nil {
		price, err := decimal.NewFromString(*raw)
		if err != nil {
			return apperrors.Validation("Price must be a number")
		}
		in.Price = &price
	}
	if raw := formField(params, "rating"); raw != nil {
		rating, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return apperrors.Validation("Rating must be a number")
		}
		in.Rating = &rating
	}

	product, err := h.products.Update(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(product))
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/delete/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	if err := h.products.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(map[string]interface{}{}))
}

// Search godoc
// @Summary Search products by free text
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return apperrors.Validation("Please provide a search query")
	}
	products, err := h.products.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(products), products))
}

// Filter godoc
// @Summary Filter products
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param rating query number false "Minimum rating"
// @Success 200 {object} Envelope
// @Router /products/filter [get]
func (h *ProductHandler) Filter(c echo.Context) error {
	f := repository.ProductFilter{Category: c.QueryParam("category")}

	if raw := c.QueryParam("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return apperrors.Validation("minPrice must be a number")
		}
		f.MinPrice = &min
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return apperrors.Validation("maxPrice must be a number")
		}
		f.MaxPrice = &max
	}
	if raw := c.QueryParam("rating"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return apperrors.Validation("rating must be a number")
		}
		f.MinRating = &min
	}

	products, err := h.products.Filter(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(products), products))
}

// Sort godoc
// @Summary Sort products
// @Tags products
// @Produce json
// @Param sortBy query string true "Sort key" Enums(price-asc, price-desc, rating-desc, name-asc, name-desc)
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /products/sort [get]
func (h *ProductHandler) Sort(c echo.Context) error {
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		return apperrors.Validation("Please provide a sort parameter")
	}
	products, err := h.products.Sort(c.Request().Context(), sortBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(products), products))
}
