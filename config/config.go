package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds everything main needs to wire the API.
type Config struct {
	Port string

	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	UploadDir      string
	MaxUploadBytes int64

	CORSOrigins []string

	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminAPIKey   string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		AdminName:     getEnv("ADMIN_NAME", "Administrateur"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	cfg.JWTSecret = []byte(secret)

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "2"), 10, 64)
	if err != nil || maxMB <= 0 {
		zap.L().Warn("invalid MAX_UPLOAD_MB, falling back to 2", zap.String("value", os.Getenv("MAX_UPLOAD_MB")))
		maxMB = 2
	}
	cfg.MaxUploadBytes = maxMB << 20

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		cfg.DatabaseURL = postgresDSN()
	case "sqlite":
		cfg.DatabaseURL = getEnv("DATABASE_URL", "glory-event.db")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

// postgresDSN prefers DATABASE_URL and falls back to the discrete DB_* variables.
func postgresDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "glory_event"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
