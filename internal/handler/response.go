package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "shopx/internal/errors"
)

// Envelope is the uniform JSON wrapper returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Page    *int        `json:"page,omitempty"`
	Pages   *int        `json:"pages,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	User    interface{} `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message,omitempty"`
}

func dataEnvelope(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func listEnvelope(count int, data interface{}) Envelope {
	return Envelope{Success: true, Count: &count, Data: data}
}

func pagedEnvelope(count int, total int64, page, pages int, data interface{}) Envelope {
	return Envelope{Success: true, Count: &count, Total: &total, Page: &page, Pages: &pages, Data: data}
}

func messageEnvelope(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// validationError converts a validator failure on a bound request into the
// 400 taxonomy, with the friendly messages clients rely on.
func validationError(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
			return apperrors.Validation(msg)
		}
		if msg, ok := messages[first.Tag()]; ok {
			return apperrors.Validation(msg)
		}
	}
	return apperrors.Validation("Invalid request body")
}
