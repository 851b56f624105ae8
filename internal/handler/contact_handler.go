package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "shopx/internal/errors"
	"shopx/internal/service"
)

// ContactRequest is the contact-form body.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactHandler handles the contact-form endpoint.
type ContactHandler struct {
	contact service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contact service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Send godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Submission"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /contact [post]
func (h *ContactHandler) Send(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err, map[string]string{
			"required":    "All fields are required",
			"Email.email": "Invalid email format",
		})
	}

	if err := h.contact.Send(req.Name, req.Email, req.Subject, req.Message); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageEnvelope("Message sent successfully"))
}
