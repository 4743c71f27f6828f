package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceFixture  = "fixture"
	CatalogSourcePostgres = "postgres"

	CartStorageMemory   = "memory"
	CartStorageRedis    = "redis"
	CartStoragePostgres = "postgres"
)

var (
	ErrUnknownCatalogSource = errors.New("unknown catalog source")
	ErrUnknownCartStorage   = errors.New("unknown cart storage")
	ErrMissingDBHost        = errors.New("DB_HOST is required for postgres backends")
	ErrMissingRedisAddr     = errors.New("REDIS_ADDR is required for redis cart storage")
)

type Config struct {
	AppEnv        string
	AppPort       string
	AllowedOrigin string

	CatalogSource string
	CatalogDelay  time.Duration

	CartStorage    string
	CartStorageKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads .env (if present) and the process environment.
// Invalid settings are fatal.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		AppPort:       getEnv("APP_PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),

		CatalogSource: getEnv("CATALOG_SOURCE", CatalogSourceFixture),
		CatalogDelay:  getDuration("CATALOG_DELAY", time.Second),

		CartStorage:    getEnv("CART_STORAGE", CartStorageMemory),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "cart"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceFixture, CatalogSourcePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCatalogSource, c.CatalogSource)
	}

	switch c.CartStorage {
	case CartStorageMemory, CartStoragePostgres:
	case CartStorageRedis:
		if c.RedisAddr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCartStorage, c.CartStorage)
	}

	if c.NeedsDatabase() && c.DBHost == "" {
		return ErrMissingDBHost
	}
	return nil
}

// NeedsDatabase reports whether any backend is PostgreSQL.
func (c *Config) NeedsDatabase() bool {
	return c.CatalogSource == CatalogSourcePostgres || c.CartStorage == CartStoragePostgres
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return d
}
