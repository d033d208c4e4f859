// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Admin       AdminConfig
	Storage     StorageConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port          string
	Host          string
	ReadTimeout   int
	WriteTimeout  int
	IdleTimeout   int
	TemplatesGlob string
	RateLimitRPS  int
	RateLimitOff  bool
}

type DatabaseConfig struct {
	Driver       string // "sqlite" or "postgres"
	Path         string // sqlite file path
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

type AdminConfig struct {
	Password string
}

type StorageConfig struct {
	Backend            string // "local" or "s3"
	UploadDir          string
	Bucket             string
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	PublicBaseURL      string
	SignedURLs         bool
	SignedURLTTL       int // hours
	MaxUploadBytes     int64
	MaxImagesPerUpload int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:          getEnv("PORT", "8080"),
			Host:          getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:   getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:  getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:   getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			TemplatesGlob: getEnv("TEMPLATES_GLOB", "web/templates/*.html"),
			RateLimitRPS:  getEnvAsInt("RATE_LIMIT_RPS", 20),
			RateLimitOff:  getEnvAsBool("RATE_LIMIT_DISABLED", false),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			Path:         getEnv("DB_PATH", "storefront.db"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "storefront-secret-change-in-production"),
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 8),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Storage: StorageConfig{
			Backend:            getEnv("STORAGE_BACKEND", "local"),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
			Bucket:             getEnv("STORAGE_BUCKET", ""),
			Region:             getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:        getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:      getEnv("STORAGE_PUBLIC_BASE", ""),
			SignedURLs:         getEnvAsBool("STORAGE_SIGNED_URLS", false),
			SignedURLTTL:       getEnvAsInt("STORAGE_SIGNED_URL_TTL", 24),
			MaxUploadBytes:     getEnvAsInt64("STORAGE_MAX_UPLOAD_BYTES", 10*1024*1024),
			MaxImagesPerUpload: getEnvAsInt("STORAGE_MAX_IMAGES", 12),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Session.Secret == "storefront-secret-change-in-production" {
			return fmt.Errorf("session secret must be changed in production")
		}
		if c.Admin.Password == "" {
			return fmt.Errorf("admin password is required in production")
		}
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Storage.Backend {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
