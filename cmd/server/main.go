package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cache"
	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Swappable in tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource := buildSource(cfg)
	defer closeSource()

	opts := []catalog.Option{catalog.WithTTL(cfg.CatalogTTL)}
	if rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword); rdb != nil {
		defer rdb.Close()
		opts = append(opts, catalog.WithCache(cache.NewSnapshotCache(rdb, cfg.CatalogTTL)))
		logger.L().Info("catalog cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	store := catalog.NewStore(source, opts...)

	// Warm the snapshot so the first request doesn't pay for the load.
	if _, err := store.Categories(ctx); err != nil {
		logger.L().Warn("initial catalog load failed", zap.Error(err))
	}

	handler := newServer(ctx, cfg, store)

	logger.L().Info("storefront API starting",
		zap.String("port", cfg.AppPort),
		zap.String("catalog_source", cfg.CatalogSource),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, handler)
}

func buildSource(cfg *config.Config) (catalog.Source, func()) {
	if cfg.CatalogSource == config.CatalogSourceFile {
		return catalog.NewFileSource(cfg.CatalogFile), func() {}
	}

	database := initDBFunc(cfg)
	return newDBSource(database), func() { database.Close() }
}

func newDBSource(database *sql.DB) catalog.Source {
	categorySvc := category.NewService(category.NewRepository(database))
	productSvc := product.NewService(product.NewRepository(database))
	return catalog.NewDBSource(categorySvc, productSvc)
}

func newServer(ctx context.Context, cfg *config.Config, store httpapi.Catalog) http.Handler {
	router := mux.NewRouter()
	httpapi.NewHandler(store).RegisterRoutes(router, middleware.RequireRole(utils.RoleAdmin))

	limiter := middleware.NewRateLimiter(ctx, cfg.InternalSecretKey)

	// outermost first: request id, access log, CORS, auth, rate limit
	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.Authenticate(cfg.JWTSecret)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)
	h = logger.AccessLogMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
