package router

import (
	goerrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"shopx/internal/auth"
	"shopx/internal/config"
	apperrors "shopx/internal/errors"
	"shopx/internal/handler"
	"shopx/internal/logger"
	"shopx/internal/middleware"
	"shopx/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	userRepo repository.UserRepository,
	articleHandler *handler.ArticleHandler,
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.HTTPErrorHandler = errorHandler(cfg)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served directly; browsers embed them from the
	// frontend origin, so resource-policy headers must not block that.
	uploads := e.Group("/uploads", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
			c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
			return next(c)
		}
	})
	uploads.Static("/", cfg.UploadDir)

	protect := middleware.Protect(jwtService, userRepo, tokenStore, cfg.JWTSecret)

	api := e.Group("/api")

	// Article routes; query-builder endpoints precede the :id match
	api.GET("/articles", articleHandler.List)
	api.GET("/articles/search", articleHandler.Search)
	api.GET("/articles/filter", articleHandler.Filter)
	api.GET("/articles/sort", articleHandler.Sort)
	api.GET("/articles/:id", articleHandler.Get)

	securedArticles := api.Group("/articles", protect...)
	securedArticles.POST("", articleHandler.Create)
	securedArticles.PUT("/:id", articleHandler.Update)
	securedArticles.DELETE("/:id", articleHandler.Delete)

	// Product routes
	api.GET("/products", productHandler.List)
	api.GET("/products/search", productHandler.Search)
	api.GET("/products/filter", productHandler.Filter)
	api.GET("/products/sort", productHandler.Sort)
	api.GET("/products/:id", productHandler.Get)

	securedProducts := api.Group("/products", protect...)
	securedProducts.POST("/create", productHandler.Create)
	securedProducts.PUT("/update/:id", productHandler.Update)
	securedProducts.DELETE("/delete/:id", productHandler.Delete)

	// User routes
	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.POST("/users/logout", userHandler.Logout)
	api.GET("/users/profile/:id", userHandler.Profile)
	api.PUT("/users/profile/:id", userHandler.UpdateProfile)
	api.POST("/users/forgot-password", userHandler.ForgotPassword)
	api.POST("/users/reset-password/:token", userHandler.ResetPassword)

	securedUsers := api.Group("/users", protect...)
	securedUsers.POST("/refresh-token", userHandler.RefreshToken)
	securedUsers.GET("/verify-token", userHandler.VerifyToken)

	// Admin routes
	admin := api.Group("/admin", append(protect, middleware.AdminOnly())...)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// Contact route
	api.POST("/contact", contactHandler.Send)
}

// errorHandler is the terminal error handler: every error that escapes a
// handler is normalized into the {success:false, message} envelope. Outside
// production the response additionally carries the status and raw error text.
func errorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Server Error"
		var detail string

		var appErr *apperrors.Error
		var httpErr *echo.HTTPError
		switch {
		case goerrors.As(err, &appErr):
			status = appErr.Status()
			message = appErr.Message
			if appErr.Err != nil {
				detail = appErr.Err.Error()
			}
		case goerrors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		default:
			detail = err.Error()
		}

		if status >= http.StatusInternalServerError {
			logger.L().Error("request failed",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		body := echo.Map{"success": false, "message": message}
		if !cfg.Production() {
			body["status"] = status
			if detail != "" {
				body["error"] = detail
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
