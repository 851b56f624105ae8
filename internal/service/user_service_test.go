package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopx/internal/auth"
	apperrors "shopx/internal/errors"
	"shopx/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(to, resetURL string) error {
	args := m.Called(to, resetURL)
	return args.Error(0)
}

func (m *MockMailer) SendContactEmail(name, email, subject, message string) error {
	args := m.Called(name, email, subject, message)
	return args.Error(0)
}

func (m *MockMailer) SendContactConfirmation(name, email, subject string) error {
	args := m.Called(name, email, subject)
	return args.Error(0)
}

func newUserService(repo *MockUserRepository, store *MockTokenStore, mailer *MockMailer) UserService {
	return NewUserService(repo, auth.NewJWTService("test-secret"), store, mailer, "http://localhost:3000")
}

func errKind(t *testing.T, err error) apperrors.Kind {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	return appErr.Kind
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		setupMock    func(*MockUserRepository)
		expectedKind apperrors.Kind
		expectError  bool
	}{
		{
			name:     "successful registration",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "duplicate email",
			userName: "Existing User",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectError:  true,
			expectedKind: apperrors.KindDuplicate,
		},
		{
			name:     "duplicate email differing only in case",
			userName: "Existing User",
			email:    "EXISTING@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "EXISTING@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectError:  true,
			expectedKind: apperrors.KindDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
			user, token, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, errKind(t, err))
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_NormalizesEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "  New@Example.COM ").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
	user, _, err := svc.Register(context.Background(), "New User", "  New@Example.COM ", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestUserService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   bool
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: true,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				// unknown email and wrong password must be indistinguishable
				var appErr *apperrors.Error
				assert.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperrors.KindUnauthorized, appErr.Kind)
				assert.Equal(t, "Invalid credentials", appErr.Message)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Logout(t *testing.T) {
	mockStore := new(MockTokenStore)
	mockStore.On("BlacklistToken", mock.Anything, "raw-token", auth.TokenExpiry).Return(nil)

	svc := newUserService(new(MockUserRepository), mockStore, new(MockMailer))
	err := svc.Logout(context.Background(), "raw-token")

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestUserService_ForgotPassword(t *testing.T) {
	t.Run("stores digest and expiry, mails raw token", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "test@example.com"}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
		mockRepo.On("Save", mock.Anything, user).Return(nil)

		mockMailer := new(MockMailer)
		mockMailer.On("SendPasswordReset", "test@example.com", mock.MatchedBy(func(url string) bool {
			return len(url) > len("http://localhost:3000/reset-password/")
		})).Return(nil)

		svc := newUserService(mockRepo, new(MockTokenStore), mockMailer)
		err := svc.ForgotPassword(context.Background(), "test@example.com")

		assert.NoError(t, err)
		assert.NotEmpty(t, user.ResetPasswordToken)
		assert.NotNil(t, user.ResetPasswordExpire)
		assert.True(t, user.ResetPasswordExpire.After(time.Now()))
		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := svc.ForgotPassword(context.Background(), "nobody@example.com")

		assert.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, errKind(t, err))
	})

	t.Run("rolls back token fields when email fails", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "test@example.com"}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
		mockRepo.On("Save", mock.Anything, user).Return(nil).Twice()

		mockMailer := new(MockMailer)
		mockMailer.On("SendPasswordReset", "test@example.com", mock.Anything).Return(errors.New("smtp down"))

		svc := newUserService(mockRepo, new(MockTokenStore), mockMailer)
		err := svc.ForgotPassword(context.Background(), "test@example.com")

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Email could not be sent", appErr.Message)
		assert.Empty(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpire)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	t.Run("consumes the token and clears reset fields", func(t *testing.T) {
		raw, digest, err := auth.NewResetToken()
		assert.NoError(t, err)

		expire := time.Now().Add(30 * time.Minute)
		user := &model.User{
			ID:                  uuid.New(),
			Email:               "test@example.com",
			ResetPasswordToken:  digest,
			ResetPasswordExpire: &expire,
		}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, digest, mock.AnythingOfType("time.Time")).Return(user, nil)
		mockRepo.On("Save", mock.Anything, user).Return(nil)

		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		err = svc.ResetPassword(context.Background(), raw, "new-password")

		assert.NoError(t, err)
		assert.Empty(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpire)
		assert.True(t, auth.CheckPassword(user.PasswordHash, "new-password"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects short passwords before the lookup", func(t *testing.T) {
		svc := newUserService(new(MockUserRepository), new(MockTokenStore), new(MockMailer))
		err := svc.ResetPassword(context.Background(), "whatever", "short")

		assert.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, errKind(t, err))
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, gorm.ErrRecordNotFound)

		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		err := svc.ResetPassword(context.Background(), "stale-token", "new-password")

		assert.Error(t, err)
		var appErr *apperrors.Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Equal(t, "Invalid or expired reset token", appErr.Message)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("merges only provided fields", func(t *testing.T) {
		existing := &model.User{
			ID:       userID,
			Name:     "Old Name",
			Email:    "old@example.com",
			Phone:    "555-0100",
			Language: "English",
			Currency: "USD",
		}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, existing).Return(nil)

		newName := "New Name"
		newCurrency := "EUR"
		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		user, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{
			Name:     &newName,
			Currency: &newCurrency,
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "EUR", user.Currency)
		assert.Equal(t, "old@example.com", user.Email)
		assert.Equal(t, "555-0100", user.Phone)
	})

	t.Run("rejects invalid language", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Name: "N", Email: "e@x.com"}, nil)

		bad := "Klingon"
		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Language: &bad})

		assert.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, errKind(t, err))
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	userID := uuid.New()

	t.Run("elevates to admin", func(t *testing.T) {
		existing := &model.User{ID: userID, Name: "N", Email: "e@x.com", Role: model.RoleUser}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, existing).Return(nil)

		svc := newUserService(mockRepo, new(MockTokenStore), new(MockMailer))
		user, err := svc.UpdateRole(context.Background(), userID, model.RoleAdmin)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc := newUserService(new(MockUserRepository), new(MockTokenStore), new(MockMailer))
		_, err := svc.UpdateRole(context.Background(), userID, "superuser")

		assert.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, errKind(t, err))
	})
}
