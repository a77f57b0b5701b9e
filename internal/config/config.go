package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

type Config struct {
	Env          string
	Port         string
	DatabaseURL  string
	AllowOrigins string
	RateLimitMax int
	SessionTTL   time.Duration
	Redis        RedisConfig
	JWT          JWTConfig
	Email        EmailConfig
	Admin        AdminConfig
}

// LoadConfig reads the process environment. Call godotenv.Load first to pick
// up a .env file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:          getEnv("APP_ENV", "production"),
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		RateLimitMax: getIntEnv("RATE_LIMIT_MAX", 20),
		SessionTTL:   getDurationEnv("SESSION_TTL", 7*24*time.Hour),
	}

	// Redis config
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getIntEnv("REDIS_DB", 0)

	// JWT config
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "topex-school")
	cfg.JWT.TTL = getDurationEnv("JWT_TTL", cfg.SessionTTL)

	// Email config
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "noreply@topex.uz")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Topex School")

	// Admin seed
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	cfg.Admin.FullName = getEnv("ADMIN_FULL_NAME", "Administrator")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if strings.Contains(c.AllowOrigins, "*") {
		errs = append(errs, errors.New("CORS_ALLOW_ORIGINS must list explicit origins, \"*\" cannot be combined with credentials"))
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set"))
	}
	return errors.Join(errs...)
}

func (c *Config) EmailEnabled() bool {
	return c.Email.ResendAPIKey != ""
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}
