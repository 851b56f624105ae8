package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "shopx/docs" // swagger docs

	"shopx/internal/auth"
	"shopx/internal/cache"
	"shopx/internal/config"
	"shopx/internal/db"
	"shopx/internal/handler"
	"shopx/internal/logger"
	"shopx/internal/mailer"
	"shopx/internal/model"
	"shopx/internal/repository"
	"shopx/internal/router"
	"shopx/internal/service"
)

// @title ShopX API
// @version 1.0
// @description E-commerce and blog backend with articles, products, users and JWT authentication.
// @host localhost:5001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()
	log := logger.L()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.Product{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn("redis unreachable, token blacklist disabled", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("upload dir", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	smtpMailer := mailer.New(cfg)

	// Initialize services
	userService := service.NewUserService(userRepo, jwtService, tokenStore, smtpMailer, cfg.FrontendURL)
	articleService := service.NewArticleService(articleRepo)
	productService := service.NewProductService(productRepo)
	contactService := service.NewContactService(smtpMailer)

	// Initialize handlers
	articleHandler := handler.NewArticleHandler(articleService, cfg.UploadDir)
	productHandler := handler.NewProductHandler(productService, cfg.UploadDir)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		userRepo,
		articleHandler,
		productHandler,
		userHandler,
		adminHandler,
		contactHandler,
	)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := db.Close(gormDB); err != nil {
		log.Error("db close", zap.Error(err))
	}
}
