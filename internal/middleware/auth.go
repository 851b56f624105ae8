package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopx/internal/auth"
	apperrors "shopx/internal/errors"
	"shopx/internal/model"
)

// userContextKey is where the loaded user is attached for handlers.
const userContextKey = "currentUser"

// UserLoader loads the user a verified token resolves to. Satisfied by
// repository.UserRepository.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Protect returns the two sequential gates guarding protected routes:
// bearer extraction + signature/expiry verification, then a fresh store
// load of the user. Loading the user on every request (rather than
// trusting token claims) makes role changes and deletions take effect
// immediately.
func Protect(jwtService *auth.JWTService, users UserLoader, blacklist auth.TokenStoreInterface, secret string) []echo.MiddlewareFunc {
	gate := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return apperrors.Unauthorized("Not authorized to access this route")
			}
			return apperrors.Unauthorized("Token is invalid or expired")
		},
	})
	return []echo.MiddlewareFunc{gate, loadUser(jwtService, users, blacklist)}
}

// loadUser resolves the already-verified bearer token to a stored user and
// attaches it to the request context.
func loadUser(jwtService *auth.JWTService, users UserLoader, blacklist auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := ExtractBearer(c)
			if !ok {
				return apperrors.Unauthorized("Not authorized to access this route")
			}

			if blacklisted, _ := blacklist.IsBlacklisted(c.Request().Context(), token); blacklisted {
				return apperrors.Unauthorized("Token is invalid or expired")
			}

			userID, err := jwtService.Verify(token)
			if err != nil {
				return apperrors.Unauthorized("Token is invalid or expired")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.Unauthorized("User not found")
				}
				return apperrors.Server("Server error in authentication", err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly rejects authenticated callers without the admin role. Compose
// it after Protect.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin() {
				return apperrors.Forbidden("Admin privileges required")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Protect, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// ExtractBearer reads the raw token from the Authorization header.
func ExtractBearer(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
