package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/store"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Database store.Config
	Cache    cache.Config
	Log      LogConfig
	// SeedDatabase loads demo data into an empty database at startup.
	SeedDatabase bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig reads a .env file when present, then builds the configuration
// from environment variables. Variables already set in the environment win
// over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cacheDefaults := cache.DefaultConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "change-me-in-production"),
			Expiration: time.Duration(getEnvInt("JWT_EXPIRATION_MINUTES", 10)) * time.Minute,
		},
		Database: store.Config{
			Driver:   getEnv("DB_DRIVER", store.DriverSQLite),
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Cache: cache.Config{
			Driver:             getEnv("CACHE_DRIVER", cacheDefaults.Driver),
			Capacity:           getEnvInt("CACHE_CAPACITY", cacheDefaults.Capacity),
			NumShards:          getEnvInt("CACHE_SHARDS", cacheDefaults.NumShards),
			TTL:                time.Duration(getEnvInt("CACHE_TTL", 300000)) * time.Millisecond,
			EvictionPercentage: getEnvInt("CACHE_EVICTION_PERCENTAGE", cacheDefaults.EvictionPercentage),
			Codec:              getEnv("CACHE_CODEC", cacheDefaults.Codec),
			ClearConcurrency:   getEnvInt("CACHE_CLEAR_CONCURRENCY", cacheDefaults.ClearConcurrency),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		SeedDatabase: getEnvBool("SEED_DATABASE", true),
	}

	if err := cfg.Cache.Validate(); err != nil {
		return nil, fmt.Errorf("cache config: %w", err)
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, errors.New("JWT_EXPIRATION_MINUTES must be greater than 0")
	}
	return cfg, nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
