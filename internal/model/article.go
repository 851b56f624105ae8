package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article is a publishable content item.
type Article struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:160;not null"`
	Slug       *string   `json:"slug,omitempty" gorm:"size:200;uniqueIndex"`
	Excerpt    string    `json:"excerpt,omitempty" gorm:"size:300"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Author     string    `json:"author" gorm:"size:60;not null"`
	Category   string    `json:"category" gorm:"size:120;index"`
	Tags       []string  `json:"tags" gorm:"serializer:json"`
	CoverImage string    `json:"coverImage,omitempty" gorm:"size:255"`
	Images     []string  `json:"images" gorm:"serializer:json"`
	Status     string    `json:"status" gorm:"size:20;default:'published';index"`

	PublishedAt time.Time `json:"publishedAt" gorm:"index"`
	Views       int       `json:"views" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID and defaults before the record is created.
// The publish timestamp defaults to creation time.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPublished
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now()
	}
	return nil
}

// Validate checks the schema constraints and returns every failing
// constraint's message, first failure first. An empty slice means valid.
func (a *Article) Validate() []string {
	var msgs []string
	if a.Title == "" {
		msgs = append(msgs, "Please add a title")
	} else if len(a.Title) > 160 {
		msgs = append(msgs, "Title cannot be more than 160 characters")
	}
	if len(a.Excerpt) > 300 {
		msgs = append(msgs, "Excerpt cannot exceed 300 characters")
	}
	if a.Content == "" {
		msgs = append(msgs, "Please add content")
	}
	if a.Author == "" {
		msgs = append(msgs, "Please add an author")
	} else if len(a.Author) > 60 {
		msgs = append(msgs, "Author name cannot exceed 60 characters")
	}
	if a.Category == "" {
		msgs = append(msgs, "Please add a category")
	}
	if a.Status != StatusDraft && a.Status != StatusPublished {
		msgs = append(msgs, "Status must be either 'draft' or 'published'")
	}
	return msgs
}
