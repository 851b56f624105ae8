package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	Env        string // "development" or "production"

	MySQLDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	FromName     string
	FromEmail    string
	CompanyEmail string

	FrontendURL string
	UploadDir   string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "5001"),
		Env:        getEnv("APP_ENV", "development"),

		MySQLDSN: getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/shopx?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		FromName:     getEnv("FROM_NAME", "ShopX"),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@shopx.local"),
		CompanyEmail: getEnv("COMPANY_EMAIL", "contact@shopx.local"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}
}

// Production reports whether the app runs in production mode. Outside of
// production, error responses echo internal error detail.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
