package config

import (
	"testing"
	"time"

	"github.com/goliatone/go-storefront/cache"
	"github.com/goliatone/go-storefront/store"
)

var envKeys = []string{
	"PORT", "READ_TIMEOUT_SECONDS", "WRITE_TIMEOUT_SECONDS", "JWT_SECRET", "JWT_EXPIRATION_MINUTES",
	"DB_DRIVER", "DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"CACHE_DRIVER", "CACHE_TTL", "CACHE_CAPACITY", "CACHE_SHARDS", "CACHE_EVICTION_PERCENTAGE",
	"CACHE_CODEC", "CACHE_CLEAR_CONCURRENCY", "SEED_DATABASE", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable the loader reads; empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Server.Port)
	}
	if cfg.JWT.Expiration != 10*time.Minute {
		t.Errorf("expected 10 minute tokens, got %v", cfg.JWT.Expiration)
	}
	if cfg.Database.Driver != store.DriverSQLite {
		t.Errorf("expected sqlite by default, got %s", cfg.Database.Driver)
	}
	if cfg.Cache.Driver != cache.DriverSturdyc || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
	if !cfg.SeedDatabase {
		t.Error("expected seeding to be on by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRATION_MINUTES", "30")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CACHE_DRIVER", "ttlcache")
	t.Setenv("CACHE_TTL", "1500")
	t.Setenv("CACHE_CODEC", "msgpack")
	t.Setenv("CACHE_CLEAR_CONCURRENCY", "4")
	t.Setenv("SEED_DATABASE", "false")
	t.Setenv("READ_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("unexpected server/jwt config %+v %+v", cfg.Server, cfg.JWT)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected malformed value to fall back to default, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Port != 6543 {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Cache.Driver != "ttlcache" || cfg.Cache.TTL != 1500*time.Millisecond ||
		cfg.Cache.Codec != "msgpack" || cfg.Cache.ClearConcurrency != 4 {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.SeedDatabase {
		t.Error("expected seeding to be disabled")
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown cache driver", "CACHE_DRIVER", "redis"},
		{"unknown codec", "CACHE_CODEC", "xml"},
		{"zero cache capacity", "CACHE_CAPACITY", "0"},
		{"negative jwt expiration", "JWT_EXPIRATION_MINUTES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadConfig_WithoutDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig without .env failed: %v", err)
	}
}
