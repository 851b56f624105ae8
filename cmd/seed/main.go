package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopx/internal/auth"
	"shopx/internal/config"
	"shopx/internal/db"
	"shopx/internal/model"
	"shopx/internal/repository"
)

const (
	adminName     = "Site Admin"
	adminEmail    = "admin@shopx.local"
	adminPassword = "admin123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Article{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err := seedArticles(ctx, articleRepo)
	if err != nil {
		log.Fatalf("Failed to seed articles: %v", err)
	}
	log.Printf("  - Articles created: %d", created)

	created, err = seedProducts(ctx, productRepo)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("  - Products created: %d", created)

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the admin account unless one already exists for the
// seed email.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	existing, err := repo.FindByEmail(ctx, adminEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user created: %s", adminEmail)
	return nil
}

func seedArticles(ctx context.Context, repo repository.ArticleRepository) (int, error) {
	now := time.Now()
	samples := []model.Article{
		{
			Title:      "Choosing Your First Mechanical Keyboard",
			Excerpt:    "Switch types, layouts and what actually matters.",
			Content:    "Linear, tactile or clicky: the switch decides how the board feels long before the keycaps do. Start with a hot-swap board so you can change your mind without a soldering iron.",
			Author:     "Sarah Chen",
			Category:   "Technology",
			Tags:       []string{"keyboards", "hardware", "guide"},
			CoverImage: "/uploads/seed-keyboard.jpg",
			Status:     model.StatusPublished,
		},
		{
			Title:      "Why We Moved Our Store to Headless",
			Excerpt:    "Lessons from a six-month replatforming.",
			Content:    "Decoupling the storefront from the catalog let the content team ship landing pages without a deploy. The trade-off is that every integration you used to get for free now has an owner.",
			Author:     "Marcus Webb",
			Category:   "Business",
			Tags:       []string{"ecommerce", "architecture"},
			CoverImage: "/uploads/seed-headless.jpg",
			Status:     model.StatusPublished,
		},
		{
			Title:    "Holiday Catalog Planning Notes",
			Excerpt:  "Internal draft for the Q4 push.",
			Content:  "Working list of categories and promos for the holiday season. Not ready for the front page yet.",
			Author:   "Sarah Chen",
			Category: "Business",
			Tags:     []string{"planning"},
			Status:   model.StatusDraft,
		},
	}

	created := 0
	for i := range samples {
		samples[i].PublishedAt = now.Add(-time.Duration(i*24) * time.Hour)
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) (int, error) {
	samples := []model.Product{
		{
			Name:        "Aurora 75 Keyboard",
			Description: "Hot-swap 75% mechanical keyboard with gasket mount and south-facing RGB.",
			Price:       decimal.NewFromFloat(129.99),
			Category:    "Electronics",
			Images:      []string{"/uploads/seed-aurora75.jpg"},
			ProductLink: "https://example.com/aurora-75",
			Rating:      4.5,
		},
		{
			Name:        "Trailline Daypack 22L",
			Description: "Water-resistant commuter backpack with a padded 16-inch laptop sleeve.",
			Price:       decimal.NewFromFloat(74.00),
			Category:    "Sports",
			Images:      []string{"/uploads/seed-daypack.jpg"},
			ProductLink: "https://example.com/trailline-22",
			Rating:      4.2,
		},
		{
			Name:        "Ember Pour-Over Kettle",
			Description: "Gooseneck kettle with variable temperature hold, 0.9L.",
			Price:       decimal.NewFromFloat(58.50),
			Category:    "Home & Kitchen",
			Images:      []string{"/uploads/seed-kettle.jpg"},
			ProductLink: "https://example.com/ember-kettle",
			Rating:      4.8,
		},
	}

	created := 0
	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
