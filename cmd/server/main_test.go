package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-be/internal/config"
	"storefront-be/internal/middleware"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"
	"storefront-be/internal/storefront"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:         "test",
		AppPort:        "8080",
		AllowedOrigin:  "http://localhost:5173",
		CatalogSource:  config.CatalogSourceFixture,
		CartStorage:    config.CartStorageMemory,
		CartStorageKey: "cart",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func TestNewServer(t *testing.T) {
	cfg := testConfig()
	app := storefront.New(context.Background(), product.NewFixtureSource(), nil, storefront.WithLogger(zap.NewNop()))
	defer app.Close()

	router, err := newServer(cfg, app, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	require.NoError(t, err)

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, cfg.AllowedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Metrics", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/metrics", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "storefront_catalog_loads_started_total")
		assert.Contains(t, rr.Body.String(), "go_goroutines")
	})

	t.Run("GraphQL", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{"query":"{ catalog { status } }"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":{"catalog":{"status":"idle"}}}`, rr.Body.String())
	})

	t.Run("Products route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/graphql", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestNewSource(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, &product.FixtureSource{}, newSource(cfg, nil))

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg.CatalogSource = config.CatalogSourcePostgres
	_, isFixture := newSource(cfg, db).(*product.FixtureSource)
	assert.False(t, isFixture)
}

func TestNewCartStorage(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	st, closeFn := newCartStorage(ctx, cfg, nil)
	assert.IsType(t, &storage.Memory{}, st)
	closeFn()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg.CartStorage = config.CartStoragePostgres
	st, closeFn = newCartStorage(ctx, cfg, db)
	assert.IsType(t, &storage.Postgres{}, st)
	closeFn()
}

func TestNewCartStorage_FallsBackToMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("Postgres without a database", func(t *testing.T) {
		cfg := testConfig()
		cfg.CartStorage = config.CartStoragePostgres

		st, closeFn := newCartStorage(ctx, cfg, nil)
		defer closeFn()

		assert.IsType(t, &storage.Memory{}, st)
	})

	t.Run("Unreachable Redis", func(t *testing.T) {
		cfg := testConfig()
		cfg.CartStorage = config.CartStorageRedis
		cfg.RedisAddr = "127.0.0.1:1"

		st, closeFn := newCartStorage(ctx, cfg, nil)
		defer closeFn()

		require.IsType(t, &storage.Memory{}, st)
		require.NoError(t, st.Save(ctx, "cart", []byte(`{"items":[]}`)))
		data, err := st.Load(ctx, "cart")
		require.NoError(t, err)
		assert.JSONEq(t, `{"items":[]}`, string(data))
	})
}

func TestRun(t *testing.T) {
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()

	var addr string
	startServerFunc = func(srv *http.Server) error {
		addr = srv.Addr
		return nil
	}

	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("CATALOG_SOURCE", "fixture")
	t.Setenv("CART_STORAGE", "memory")

	assert.NoError(t, run())
	assert.Equal(t, ":9090", addr)
}

func TestRun_PostgresCart(t *testing.T) {
	origOpenDB := openDBFunc
	origStartServer := startServerFunc
	defer func() {
		openDBFunc = origOpenDB
		startServerFunc = origStartServer
	}()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("SELECT value").
		WithArgs("cart").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectClose()

	openDBFunc = func(cfg *config.Config) (*sql.DB, error) { return db, nil }
	startServerFunc = func(srv *http.Server) error { return http.ErrServerClosed }

	t.Setenv("APP_ENV", "test")
	t.Setenv("CATALOG_SOURCE", "fixture")
	t.Setenv("CART_STORAGE", "postgres")
	t.Setenv("DB_HOST", "localhost")

	assert.NoError(t, run())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_DatabaseUnavailable(t *testing.T) {
	origOpenDB := openDBFunc
	origStartServer := startServerFunc
	defer func() {
		openDBFunc = origOpenDB
		startServerFunc = origStartServer
	}()

	openDBFunc = func(cfg *config.Config) (*sql.DB, error) {
		return nil, errors.New("failed to ping DB: connection refused")
	}
	startServerFunc = func(srv *http.Server) error { return http.ErrServerClosed }

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")

	t.Run("Cart falls back to memory", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "fixture")
		t.Setenv("CART_STORAGE", "postgres")

		assert.NoError(t, run())
	})

	t.Run("Catalog cannot start without it", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "postgres")
		t.Setenv("CART_STORAGE", "memory")

		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog database")
	})
}
