package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host           string
	Port           int
	Database       string
	User           string
	Password       string
	MaxConns       int
	MinConns       int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
	ConnectTimeout time.Duration
	HealthTimeout  time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds token and admin credentials
type AuthConfig struct {
	JWTSecret   string
	AdminAPIKey string
	TokenTTL    time.Duration
}

// UploadsConfig holds object storage settings for presigned uploads
type UploadsConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string
	Region    string
	URLExpiry time.Duration
}

// RateLimitConfig holds request throttling settings
type RateLimitConfig struct {
	Enabled     bool
	GlobalLimit int64
	ClientLimit int64
	WindowSec   int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("POSTGRES_HOST", "localhost"),
			Port:           getEnvInt("POSTGRES_PORT", 5432),
			Database:       getEnv("POSTGRES_DB", "directory"),
			User:           getEnv("POSTGRES_USER", "directory"),
			Password:       getEnv("POSTGRES_PASSWORD", "directory"),
			MaxConns:       getEnvInt("POSTGRES_MAX_CONNS", 50),
			MinConns:       getEnvInt("POSTGRES_MIN_CONNS", 10),
			MaxIdleTime:    getEnvDuration("POSTGRES_MAX_IDLE_TIME", 30*time.Minute),
			MaxLifetime:    getEnvDuration("POSTGRES_MAX_LIFETIME", 1*time.Hour),
			ConnectTimeout: getEnvDuration("POSTGRES_CONNECT_TIMEOUT", 5*time.Second),
			HealthTimeout:  getEnvDuration("POSTGRES_HEALTH_TIMEOUT", 3*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "secret"),
			AdminAPIKey: getEnv("ADMIN_API_KEY", "secret"),
			TokenTTL:    getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
		},
		Uploads: UploadsConfig{
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Bucket:    getEnv("AWS_BUCKET", ""),
			Endpoint:  getEnv("AWS_ENDPOINT", ""),
			Region:    getEnv("AWS_REGION", "auto"),
			URLExpiry: getEnvDuration("UPLOAD_URL_EXPIRY", 15*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getEnvBool("RATE_LIMIT_ENABLED", true),
			GlobalLimit: int64(getEnvInt("RATE_LIMIT_GLOBAL", 1000)),
			ClientLimit: int64(getEnvInt("RATE_LIMIT_CLIENT", 120)),
			WindowSec:   getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("max_conns must be >= min_conns")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
