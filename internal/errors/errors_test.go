package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"validation", Validation("Please add a title"), http.StatusBadRequest},
		{"bad id", BadID("abc"), http.StatusBadRequest},
		{"duplicate", Duplicate("Email"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Admin privileges required"), http.StatusForbidden},
		{"not found", NotFound("Article", "x"), http.StatusNotFound},
		{"server", Server("", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Email already exists", Duplicate("Email").Error())
	assert.Equal(t, "Article not found with id of 42", NotFound("Article", "42").Error())
	assert.Equal(t, "Server Error", Server("", nil).Error())
}

func TestTranslate(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, Translate(nil, "Article", "x"))
	})

	t.Run("record not found becomes 404", func(t *testing.T) {
		err := Translate(gorm.ErrRecordNotFound, "Article", "42")
		assert.Equal(t, KindNotFound, err.Kind)
		assert.Equal(t, "Article not found with id of 42", err.Message)
	})

	t.Run("wrapped record not found still translates", func(t *testing.T) {
		wrapped := fmt.Errorf("loading article: %w", gorm.ErrRecordNotFound)
		err := Translate(wrapped, "Article", "42")
		assert.Equal(t, KindNotFound, err.Kind)
	})

	t.Run("already tagged errors pass through unchanged", func(t *testing.T) {
		tagged := Unauthorized("Invalid credentials")
		assert.Same(t, tagged, Translate(tagged, "User", "x"))
	})

	t.Run("mysql duplicate entry names the field", func(t *testing.T) {
		dup := &mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'a@b.com' for key 'users.uni_users_email'",
		}
		err := Translate(dup, "User", "")
		assert.Equal(t, KindDuplicate, err.Kind)
		assert.Equal(t, "Email already exists", err.Message)
	})

	t.Run("other mysql errors become server errors", func(t *testing.T) {
		err := Translate(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout"}, "User", "")
		assert.Equal(t, KindServer, err.Kind)
	})
}

func TestDuplicateField(t *testing.T) {
	tests := []struct {
		message string
		field   string
	}{
		{"Duplicate entry 'a@b.com' for key 'users.uni_users_email'", "Email"},
		{"Duplicate entry 'my-post' for key 'articles.uni_articles_slug'", "Slug"},
		{"Duplicate entry 'x' for key 'PRIMARY'", "Field"},
		{"garbled", "Field"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.field, duplicateField(tt.message))
	}
}
