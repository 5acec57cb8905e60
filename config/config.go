package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SMTP holds the mail transport settings used for password reset codes.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Config is built once at startup and passed by reference into the
// components that need it. Business logic never reads the environment
// directly.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	BaseURL   string
	JWTSecret string
	JWTExpiry time.Duration
	UploadDir string
	SMTP      SMTP
}

// Load reads the environment (optionally seeded from a .env file) into
// a Config. Missing required values are reported as errors instead of
// surfacing later as broken tokens or dead DB connections.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "cakestore"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
		JWTSecret: os.Getenv("JWT_SECRET_KEY"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "Cake Store <no-reply@cakestore.dev>"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	expiry := getEnv("JWT_EXPIRY_TIME", "2160h") // 90 days
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_TIME %q: %w", expiry, err)
	}
	cfg.JWTExpiry = d

	smtpPort := getEnv("SMTP_PORT", "587")
	p, err := strconv.Atoi(smtpPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", smtpPort, err)
	}
	cfg.SMTP.Port = p

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
