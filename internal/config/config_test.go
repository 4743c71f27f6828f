package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("CATALOG_SOURCE", "postgres")
		t.Setenv("CATALOG_DELAY", "250ms")
		t.Setenv("CART_STORAGE", "redis")
		t.Setenv("CART_STORAGE_KEY", "cart:v2")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("RATE_LIMIT_RPS", "5.5")
		t.Setenv("RATE_LIMIT_BURST", "11")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, CatalogSourcePostgres, cfg.CatalogSource)
		assert.Equal(t, 250*time.Millisecond, cfg.CatalogDelay)
		assert.Equal(t, CartStorageRedis, cfg.CartStorage)
		assert.Equal(t, "cart:v2", cfg.CartStorageKey)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, 5.5, cfg.RateLimitRPS)
		assert.Equal(t, 11, cfg.RateLimitBurst)
	})

	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{
			"APP_ENV", "APP_PORT", "CATALOG_SOURCE", "CATALOG_DELAY", "CART_STORAGE",
			"CART_STORAGE_KEY", "DB_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		} {
			t.Setenv(key, "")
		}

		cfg := LoadConfig()

		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, CatalogSourceFixture, cfg.CatalogSource)
		assert.Equal(t, time.Second, cfg.CatalogDelay)
		assert.Equal(t, CartStorageMemory, cfg.CartStorage)
		assert.Equal(t, "cart", cfg.CartStorageKey)
		assert.Equal(t, "5432", cfg.DBPort)
	})

	t.Run("Unparseable values fall back", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "")
		t.Setenv("CART_STORAGE", "")
		t.Setenv("CATALOG_DELAY", "soon")
		t.Setenv("RATE_LIMIT_BURST", "lots")

		cfg := LoadConfig()

		assert.Equal(t, time.Second, cfg.CatalogDelay)
		assert.Equal(t, 40, cfg.RateLimitBurst)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{CatalogSource: CatalogSourceFixture, CartStorage: CartStorageMemory}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("UnknownCatalogSource", func(t *testing.T) {
		cfg := valid()
		cfg.CatalogSource = "s3"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownCatalogSource)
	})

	t.Run("UnknownCartStorage", func(t *testing.T) {
		cfg := valid()
		cfg.CartStorage = "cookie"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownCartStorage)
	})

	t.Run("RedisWithoutAddr", func(t *testing.T) {
		cfg := valid()
		cfg.CartStorage = CartStorageRedis
		assert.ErrorIs(t, cfg.Validate(), ErrMissingRedisAddr)
	})

	t.Run("PostgresWithoutHost", func(t *testing.T) {
		cfg := valid()
		cfg.CartStorage = CartStoragePostgres
		assert.True(t, cfg.NeedsDatabase())
		assert.ErrorIs(t, cfg.Validate(), ErrMissingDBHost)
	})
}
