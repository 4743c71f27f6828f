package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/graph"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"
	"storefront-be/internal/storefront"
	"storefront-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix  = "storefront:"
	shutdownTimeout = 10 * time.Second
)

var (
	openDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	serverLog := logger.Named("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	if cfg.NeedsDatabase() {
		conn, err := openDBFunc(cfg)
		switch {
		case err == nil:
			database = conn
			defer database.Close()
		case cfg.CatalogSource == config.CatalogSourcePostgres:
			return fmt.Errorf("catalog database: %w", err)
		default:
			serverLog.Warn("database unavailable", zap.Error(err))
		}
	}

	cartStorage, closeStorage := newCartStorage(ctx, cfg, database)
	defer closeStorage()

	app := storefront.New(ctx, newSource(cfg, database), cartStorage,
		storefront.WithCatalogOptions(catalog.WithDelay(cfg.CatalogDelay)),
		storefront.WithCartOptions(cart.WithKey(cfg.CartStorageKey)),
	)
	defer app.Close()
	app.LoadCatalog()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	handler, err := newServer(cfg, app, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		serverLog.Info("storefront API listening",
			zap.String("addr", srv.Addr),
			zap.String("catalog_source", cfg.CatalogSource),
			zap.String("cart_storage", cfg.CartStorage),
		)
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	serverLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer mounts the JSON routes, /graphql and /metrics behind the
// middleware chain.
func newServer(cfg *config.Config, app *storefront.App, limiter *middleware.RateLimiter) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	for _, c := range app.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register storefront collector: %w", err)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(limiter.Middleware)

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Handle("/graphql", graph.NewHandler(&graph.Resolver{App: app}))
	r.Mount("/", transport.NewHandler(app).Routes())
	return r, nil
}

func newSource(cfg *config.Config, database *sql.DB) product.Source {
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		return product.NewRepository(database)
	}
	return product.NewFixtureSource()
}

// newCartStorage returns the configured cart backend and a func releasing
// whatever it opened. A backend that cannot be reached is logged and
// replaced by in-memory storage, so the server still starts.
func newCartStorage(ctx context.Context, cfg *config.Config, database *sql.DB) (cart.Storage, func()) {
	noop := func() {}
	storageLog := logger.Named("server").With(zap.String("cart_storage", cfg.CartStorage))

	switch cfg.CartStorage {
	case config.CartStorageRedis:
		rdb := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		st, err := storage.NewRedis(ctx, rdb, storage.WithPrefix(redisKeyPrefix))
		if err != nil {
			rdb.Close()
			storageLog.Warn("cart storage unavailable, keeping the cart in memory", zap.Error(err))
			return storage.NewMemory(), noop
		}
		return st, func() { rdb.Close() }
	case config.CartStoragePostgres:
		st, err := storage.NewPostgres(database)
		if err != nil {
			storageLog.Warn("cart storage unavailable, keeping the cart in memory", zap.Error(err))
			return storage.NewMemory(), noop
		}
		return st, noop
	default:
		return storage.NewMemory(), noop
	}
}
