package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Kind discriminates the closed set of failure categories the API can
// report. Handlers and the terminal error handler switch on it; nothing
// inspects error strings.
type Kind int

const (
	// KindValidation covers missing/malformed required fields and failed
	// schema constraints (length, enum membership, numeric range).
	KindValidation Kind = iota
	// KindBadID covers identifiers that are not in the expected format.
	KindBadID
	// KindDuplicate covers uniqueness violations; Message names the field.
	KindDuplicate
	// KindUnauthorized covers missing/invalid/expired credentials.
	KindUnauthorized
	// KindForbidden covers authenticated but role-insufficient callers.
	KindForbidden
	// KindNotFound covers ids that resolve to no record.
	KindNotFound
	// KindServer covers unexpected store/email/infrastructure failures.
	KindServer
)

// Error is the single tagged error type carried from services to the
// terminal handler. Err holds the underlying cause for 500s.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindBadID, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a 400 error. The first failing constraint's text is the
// message; the full list may be attached as details.
func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// BadID builds a 400 error for an identifier not in the expected format.
func BadID(id string) *Error {
	return &Error{Kind: KindBadID, Message: fmt.Sprintf("Invalid id format: %s", id)}
}

// Duplicate builds a 400 error naming the offending unique field.
func Duplicate(field string) *Error {
	return &Error{Kind: KindDuplicate, Message: field + " already exists"}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden builds a 403 error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound builds a 404 error in the canonical "<Entity> not found with id
// of <id>" shape.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with id of %s", resource, id)}
}

// Server builds a 500 error wrapping the underlying cause.
func Server(message string, err error) *Error {
	if message == "" {
		message = "Server Error"
	}
	return &Error{Kind: KindServer, Message: message, Err: err}
}

const mysqlDupEntry = 1062

// Translate normalizes a store error after a load or persist attempt.
// Record-not-found becomes a 404 for the given resource/id, a MySQL
// duplicate-key violation becomes a 400 naming the field, anything else is
// reported as a server error. Call it after every repository call whose
// error is surfaced to a client.
func Translate(err error, resource, id string) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(resource, id)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry {
		return Duplicate(duplicateField(mysqlErr.Message))
	}
	return Server("", err)
}

// duplicateField extracts a presentable field name from a MySQL duplicate
// entry message ("Duplicate entry 'x' for key 'users.uni_users_email'").
func duplicateField(message string) string {
	idx := strings.LastIndex(message, "key '")
	if idx < 0 {
		return "Field"
	}
	key := strings.TrimSuffix(message[idx+len("key '"):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	for _, field := range []string{"email", "slug", "name"} {
		if strings.Contains(key, field) {
			return strings.ToUpper(field[:1]) + field[1:]
		}
	}
	return "Field"
}
