package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopx/internal/auth"
	apperrors "shopx/internal/errors"
	"shopx/internal/model"
	"shopx/internal/repository"
)

// resetTokenTTL bounds how long a password-reset token stays consumable.
const resetTokenTTL = time.Hour

// Mailer is the outbound email collaborator.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
	SendContactEmail(name, email, subject, message string) error
	SendContactConfirmation(name, email, subject string) error
}

// ProfileUpdate carries the selective profile merge; only non-nil fields
// overwrite existing values.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	Location   *string
	DOB        *time.Time
	Address    *string
	Language   *string
	Currency   *string
	Newsletter *bool
	TwoFactor  *bool
	Avatar     *string
}

// UserService handles registration, authentication, profile and password
// reset operations, plus the admin-only user management surface.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	RefreshToken(user *model.User) (string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error

	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo        repository.UserRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	mailer      Mailer
	frontendURL string
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, mailer Mailer, frontendURL string) UserService {
	return &userService{
		repo:        repo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Register creates a new user with a hashed password and issues a token.
// The email uniqueness pre-check is case-insensitive and explicit; a
// duplicate-key race at the store layer is still translated to the same
// friendly 400. Any client-supplied role is ignored.
func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.Duplicate("Email")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Server("An error occurred during registration", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperrors.Server("An error occurred during registration", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", apperrors.Translate(err, "User", "")
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Server("An error occurred during registration", err)
	}
	return user, token, nil
}

// Login authenticates a user. Unknown email and wrong password produce the
// identical failure so callers cannot tell which one failed.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Unauthorized("Invalid credentials")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Server("An error occurred during login", err)
	}
	return user, token, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *userService) Logout(ctx context.Context, token string) error {
	if err := s.tokenStore.BlacklistToken(ctx, token, auth.TokenExpiry); err != nil {
		return apperrors.Server("Failed to log out", err)
	}
	return nil
}

// RefreshToken re-issues a fresh 7-day token for the authenticated caller.
func (s *userService) RefreshToken(user *model.User) (string, error) {
	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return "", apperrors.Server("Failed to refresh token", err)
	}
	return token, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "User", id.String())
	}
	return user, nil
}

// UpdateProfile merges the provided fields into the stored record; fields
// absent from the request keep their values.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "User", id.String())
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.DOB != nil {
		user.DOB = update.DOB
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.Language != nil {
		if !contains(model.Languages, *update.Language) {
			return nil, apperrors.Validation("Language is not valid")
		}
		user.Language = *update.Language
	}
	if update.Currency != nil {
		if !contains(model.Currencies, *update.Currency) {
			return nil, apperrors.Validation("Currency is not valid")
		}
		user.Currency = *update.Currency
	}
	if update.Newsletter != nil {
		user.Newsletter = *update.Newsletter
	}
	if update.TwoFactor != nil {
		user.TwoFactor = *update.TwoFactor
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if user.Name == "" {
		return nil, apperrors.Validation("Please add a name")
	}
	if user.Email == "" {
		return nil, apperrors.Validation("Please add an email")
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, apperrors.Translate(err, "User", id.String())
	}
	return user, nil
}

// ForgotPassword issues a one-time reset token: only the token digest and
// an expiry are stored, the raw token travels by email. If the email cannot
// be sent the stored digest/expiry are rolled back so a token the user
// never received cannot be consumed.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.Error{Kind: apperrors.KindNotFound, Message: "No user found with this email address"}
		}
		return apperrors.Server("Error processing password reset request", err)
	}

	raw, digest, err := auth.NewResetToken()
	if err != nil {
		return apperrors.Server("Error processing password reset request", err)
	}

	expire := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = digest
	user.ResetPasswordExpire = &expire
	if err := s.repo.Save(ctx, user); err != nil {
		return apperrors.Server("Error processing password reset request", err)
	}

	resetURL := strings.TrimRight(s.frontendURL, "/") + "/reset-password/" + raw
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		// compensating write: the token must not stay valid if the user
		// never received it
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		_ = s.repo.Save(ctx, user)
		return apperrors.Server("Email could not be sent", err)
	}
	return nil
}

// ResetPassword exchanges a raw token for a digest-match-and-expiry check
// and sets the new password. Tokens are single-use: both reset fields are
// cleared on consumption.
func (s *userService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.Validation("Password must be at least 6 characters")
	}

	user, err := s.repo.FindByResetToken(ctx, auth.HashResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("Invalid or expired reset token")
		}
		return apperrors.Server("Error resetting password", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.Server("Error resetting password", err)
	}
	user.PasswordHash = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if err := s.repo.Save(ctx, user); err != nil {
		return apperrors.Server("Error resetting password", err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Server("", err)
	}
	return users, nil
}

// UpdateRole elevates or demotes a user. Callers reach this only through
// the admin-gated routes.
func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, apperrors.Validation("Role must be either 'user' or 'admin'")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, "User", id.String())
	}
	user.Role = role
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, apperrors.Translate(err, "User", id.String())
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperrors.Translate(err, "User", id.String())
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Translate(err, "User", id.String())
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
