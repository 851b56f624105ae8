package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "shopx/internal/errors"
	"shopx/internal/repository"
	"shopx/internal/service"
)

// ArticleHandler handles the article collection endpoints.
type ArticleHandler struct {
	articles  service.ArticleService
	uploadDir string
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articles service.ArticleService, uploadDir string) *ArticleHandler {
	return &ArticleHandler{articles: articles, uploadDir: uploadDir}
}

// List godoc
// @Summary List published articles, newest first
// @Tags articles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} Envelope
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	articles, total, err := h.articles.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, pagedEnvelope(len(articles), total, page, pages, articles))
}

// Get godoc
// @Summary Get a single article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	article, err := h.articles.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(article))
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	uploaded, err := saveUploadedImages(c, h.uploadDir)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return apperrors.Validation("Invalid request body")
	}

	in := service.ArticleInput{
		Title:          c.FormValue("title"),
		Slug:           c.FormValue("slug"),
		Excerpt:        c.FormValue("excerpt"),
		Content:        c.FormValue("content"),
		Author:         c.FormValue("author"),
		Category:       c.FormValue("category"),
		CoverImage:     c.FormValue("coverImage"),
		Status:         c.FormValue("status"),
		UploadedImages: uploaded,
	}
	if tags, ok := formTags(params); ok {
		in.Tags = tags
	}

	article, err := h.articles.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataEnvelope(article))
}

// Update godoc
// @Summary Update an article
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
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

	in := service.ArticleUpdate{
		Title:          formField(params, "title"),
		Slug:           formField(params, "slug"),
		Excerpt:        formField(params, "excerpt"),
		Content:        formField(params, "content"),
		Author:         formField(params, "author"),
		Category:       formField(params, "category"),
		CoverImage:     formField(params, "coverImage"),
		Status:         formField(params, "status"),
		UploadedImages: uploaded,
	}
	if tags, ok := formTags(params); ok {
		in.Tags = &tags
	}

	article, err := h.articles.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(article))
}

// Delete godoc
// @Summary Delete an article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	if err := h.articles.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(map[string]interface{}{}))
}

// Search godoc
// @Summary Search articles by free text
// @Tags articles
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /articles/search [get]
func (h *ArticleHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return apperrors.Validation("Please provide a search query")
	}
	articles, err := h.articles.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(articles), articles))
}

// Filter godoc
// @Summary Filter articles
// @Tags articles
// @Produce json
// @Param category query string false "Category"
// @Param author query string false "Author"
// @Param tag query string false "Tag membership"
// @Param status query string false "Status"
// @Param from query string false "Published from (YYYY-MM-DD)"
// @Param to query string false "Published to (YYYY-MM-DD)"
// @Success 200 {object} Envelope
// @Router /articles/filter [get]
func (h *ArticleHandler) Filter(c echo.Context) error {
	f := repository.ArticleFilter{
		Category: c.QueryParam("category"),
		Author:   c.QueryParam("author"),
		Tag:      c.QueryParam("tag"),
		Status:   c.QueryParam("status"),
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return apperrors.Validation("Invalid 'from' date")
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return apperrors.Validation("Invalid 'to' date")
		}
		f.To = &t
	}

	articles, err := h.articles.Filter(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(articles), articles))
}

// Sort godoc
// @Summary Sort published articles
// @Tags articles
// @Produce json
// @Param sortBy query string true "Sort key" Enums(date-desc, date-asc, views-desc, title-asc, title-desc)
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /articles/sort [get]
func (h *ArticleHandler) Sort(c echo.Context) error {
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		return apperrors.Validation("Please provide a sort parameter")
	}
	articles, err := h.articles.Sort(c.Request().Context(), sortBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(articles), articles))
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
