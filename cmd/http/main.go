package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fsanano/catalog-api/internal/auth"
	"fsanano/catalog-api/internal/config"
	"fsanano/catalog-api/internal/handler"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/repository"
	"fsanano/catalog-api/internal/repository/memory"
	"fsanano/catalog-api/internal/repository/migrations"
	"fsanano/catalog-api/internal/service"
	"fsanano/catalog-api/internal/service/images"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup storage
	products, users, closeStore, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	imageStore, err := openImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	// 3. Setup logic
	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	catalogHandler := handler.NewCatalogHandler(service.NewCatalogService(products), log)
	accountHandler := handler.NewAccountHandler(service.NewAccountService(users, tokens), log)
	cartHandler := handler.NewCartHandler(service.NewCartService(users), log)
	uploadHandler := handler.NewUploadHandler(images.NewIntake(imageStore, cfg.BackendURL), cfg.Upload.MaxBytes, log)

	h := handler.NewHandler(handler.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Tokens:         tokens,
		Logger:         log,
	}, catalogHandler, accountHandler, cartHandler, uploadHandler)

	// 4. Setup server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Run server with graceful shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting server", "port", cfg.ServerPort, "store", cfg.StoreDriver, "images", cfg.Upload.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info(context.Background(), "server exiting")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log logging.Logger) (service.ProductStore, service.UserStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn(ctx, "using in-memory store, data is lost on restart")
		return memory.NewProductStore(), memory.NewUserStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := migrations.Up(ctx, db); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	log.Info(ctx, "connected to database")

	return repository.NewProductRepository(pool), repository.NewUserRepository(pool), pool.Close, nil
}

func openImageStore(ctx context.Context, cfg *config.Config) (images.Store, error) {
	if cfg.Upload.Store == config.ImageStoreS3 {
		store, err := images.NewS3Store(ctx, images.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 image store: %w", err)
		}
		return store, nil
	}

	store, err := images.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to init image dir: %w", err)
	}
	return store, nil
}
