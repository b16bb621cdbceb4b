package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceDB   = "db"
	CatalogSourceFile = "file"

	defaultAppPort    = "8080"
	defaultCatalogTTL = 5 * time.Minute
)

var (
	ErrMissingDBHost      = errors.New("DB_HOST is required when CATALOG_SOURCE=db")
	ErrMissingCatalogFile = errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file")
	ErrUnknownSource      = errors.New("CATALOG_SOURCE must be 'db' or 'file'")
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	CatalogSource string
	CatalogFile   string
	CatalogTTL    time.Duration

	RedisAddr     string
	RedisPassword string

	JWTSecret         string
	InternalSecretKey string
	CORSOrigins       []string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           getenv("APP_PORT", defaultAppPort),
		AppEnv:            os.Getenv("APP_ENV"),
		CatalogSource:     getenv("CATALOG_SOURCE", CatalogSourceDB),
		CatalogFile:       os.Getenv("CATALOG_FILE"),
		CatalogTTL:        defaultCatalogTTL,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
	}

	if v := os.Getenv("CATALOG_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_TTL must be a duration like 5m: %w", err)
		}
		cfg.CatalogTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceDB:
		if c.DBHost == "" {
			return ErrMissingDBHost
		}
	case CatalogSourceFile:
		if c.CatalogFile == "" {
			return ErrMissingCatalogFile
		}
	default:
		return ErrUnknownSource
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
