package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold. Only an existing admin may elevate another user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Languages and currencies selectable on a profile.
var (
	Languages  = []string{"English", "Spanish", "French", "German", "Chinese"}
	Currencies = []string{"USD", "EUR", "GBP", "JPY", "CAD"}
)

// User represents an authenticated user in the system.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	Username     string    `json:"username,omitempty" gorm:"size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:20;default:'user'"`
	Avatar       string    `json:"avatar" gorm:"size:255"`

	// Optional profile fields
	Phone      string     `json:"phone,omitempty" gorm:"size:30"`
	Location   string     `json:"location,omitempty" gorm:"size:120"`
	DOB        *time.Time `json:"dob,omitempty"`
	Address    string     `json:"address,omitempty" gorm:"size:255"`
	Language   string     `json:"language" gorm:"size:20;default:'English'"`
	Currency   string     `json:"currency" gorm:"size:10;default:'USD'"`
	Newsletter bool       `json:"newsletter" gorm:"default:false"`
	TwoFactor  bool       `json:"twoFactor" gorm:"default:false"`

	// Password reset; hash and expiry are either both set or both clear.
	ResetPasswordToken  string     `json:"-" gorm:"size:64;index"`
	ResetPasswordExpire *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID and field defaults before the record is created.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Language == "" {
		u.Language = "English"
	}
	if u.Currency == "" {
		u.Currency = "USD"
	}
	if u.Avatar == "" {
		u.Avatar = "/uploads/user.png"
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
