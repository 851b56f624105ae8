package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategories is the fixed category enumeration.
var ProductCategories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Kitchen",
	"Sports",
	"Beauty",
	"Toys",
	"Others",
}

// Product is a catalog entry linking to an external purchase link.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category" gorm:"size:50;not null;index"`
	Images      []string        `json:"images" gorm:"serializer:json"`
	ProductLink string          `json:"productLink" gorm:"size:512"`
	Rating      float64         `json:"rating" gorm:"default:4"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID and defaults before the record is created.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Rating == 0 {
		p.Rating = 4
	}
	return nil
}

// ValidCategory reports whether category belongs to the fixed enumeration.
func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks the schema constraints and returns every failing
// constraint's message, first failure first. An empty slice means valid.
func (p *Product) Validate() []string {
	var msgs []string
	if p.Name == "" {
		msgs = append(msgs, "Please add a product name")
	} else if len(p.Name) > 100 {
		msgs = append(msgs, "Name cannot be more than 100 characters")
	}
	if p.Description == "" {
		msgs = append(msgs, "Please add a description")
	}
	if p.Price.IsNegative() {
		msgs = append(msgs, "Price cannot be negative")
	}
	if p.Category == "" {
		msgs = append(msgs, "Please add a category")
	} else if !ValidCategory(p.Category) {
		msgs = append(msgs, "Category is not valid")
	}
	if len(p.Images) == 0 {
		msgs = append(msgs, "Please add at least one image")
	}
	if p.ProductLink == "" {
		msgs = append(msgs, "Please add a product link")
	}
	if p.Rating < 0 {
		msgs = append(msgs, "Rating must be at least 0")
	} else if p.Rating > 5 {
		msgs = append(msgs, "Rating cannot be more than 5")
	}
	return msgs
}
