package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "shopx/internal/errors"
	"shopx/internal/service"
)

// RoleRequest is the admin role-change body.
type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// AdminHandler handles the admin-only user management endpoints.
type AdminHandler struct {
	users service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEnvelope(len(users), users))
}

// GetUser godoc
// @Summary Get a single user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(user))
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body RoleRequest true "New role"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	user, err := h.users.UpdateRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope(map[string]interface{}{}))
}
