package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "shopx/internal/errors"
	"shopx/internal/middleware"
	"shopx/internal/service"
)

// RegisterRequest is the registration body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest is the selective profile update body; absent fields keep
// their stored values.
type ProfileRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Location   *string `json:"location"`
	DOB        *string `json:"dob"`
	Address    *string `json:"address"`
	Language   *string `json:"language"`
	Currency   *string `json:"currency"`
	Newsletter *bool   `json:"newsletter"`
	TwoFactor  *bool   `json:"twoFactor"`
	Avatar     *string `json:"avatar"`
}

// ForgotPasswordRequest carries the email to send a reset link to.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest carries the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UserHandler handles registration, authentication and profile endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, map[string]string{
			"required":     "Please provide all required fields",
			"Email.email":  "Please add a valid email",
			"Password.min": "Password must be at least 6 characters",
		})
	}

	user, token, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Envelope{Success: true, User: user, Token: token})
}

// Login godoc
// @Summary Authenticate a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, map[string]string{
			"required": "Please provide an email and password",
		})
	}

	user, token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, User: user, Token: token})
}

// Logout godoc
// @Summary Invalidate the presented token
// @Tags users
// @Produce json
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /users/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	token, ok := middleware.ExtractBearer(c)
	if !ok {
		return apperrors.Validation("No token provided")
	}
	if err := h.users.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageEnvelope("Logged out successfully"))
}

// Profile godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/profile/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, User: user})
}

// UpdateProfile godoc
// @Summary Update a user profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body ProfileRequest true "Fields to update"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/profile/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.BadID(c.Param("id"))
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	update := service.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
		Address:    req.Address,
		Language:   req.Language,
		Currency:   req.Currency,
		Newsletter: req.Newsletter,
		TwoFactor:  req.TwoFactor,
		Avatar:     req.Avatar,
	}
	if req.DOB != nil {
		dob, err := parseDate(*req.DOB)
		if err != nil {
			return apperrors.Validation("Invalid date of birth")
		}
		update.DOB = &dob
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, User: user})
}

// RefreshToken godoc
// @Summary Re-issue a fresh token for the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /users/refresh-token [post]
func (h *UserHandler) RefreshToken(c echo.Context) error {
	token, err := h.users.RefreshToken(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, Token: token})
}

// VerifyToken godoc
// @Summary Confirm the presented token is valid
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /users/verify-token [get]
func (h *UserHandler) VerifyToken(c echo.Context) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, User: middleware.CurrentUser(c)})
}

// ForgotPassword godoc
// @Summary Email a password-reset link
// @Tags users
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/forgot-password [post]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if err := h.users.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageEnvelope("Password reset email sent"))
}

// ResetPassword godoc
// @Summary Exchange a reset token for a new password
// @Tags users
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /users/reset-password/{token} [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if err := h.users.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageEnvelope("Password reset successful"))
}
