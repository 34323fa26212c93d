package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"iotshop/internal/config"
	"iotshop/internal/db"
	"iotshop/internal/httpserver"
	categoryrepo "iotshop/internal/repository/category"
	productrepo "iotshop/internal/repository/product"
	projectrepo "iotshop/internal/repository/project"
	userrepo "iotshop/internal/repository/user"
	"iotshop/internal/seed"
	authsvc "iotshop/internal/service/auth"
	buildersvc "iotshop/internal/service/builder"
	cartsvc "iotshop/internal/service/cart"
	catalogsvc "iotshop/internal/service/catalog"
	checkoutsvc "iotshop/internal/service/checkout"
	"iotshop/internal/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	// DB_DSN empty runs the embedded catalog; REDIS_ADDR empty keeps
	// session state in process memory.
	var (
		dbpool       *pgxpool.Pool
		productRepo  productrepo.Repository
		categoryRepo categoryrepo.Repository
		userRepo     userrepo.Repository
		projectRepo  projectrepo.Repository
	)
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		dbpool = pool
		productRepo = productrepo.NewPostgres(pool, logger)
		categoryRepo = categoryrepo.NewPostgres(pool, logger)
		userRepo = userrepo.NewPostgres(pool, logger)
		projectRepo = projectrepo.NewPostgres(pool, logger)
	} else {
		logger.Printf("DB_DSN not set, serving the embedded catalog")
		productRepo = productrepo.NewMemory(seed.Products())
		categoryRepo = categoryrepo.NewMemory(seed.Categories())
		userRepo = userrepo.NewMemory(seed.Users())
		projectRepo = projectrepo.NewMemory()
	}

	var kv store.KV
	if cfg.RedisAddr != "" {
		redisStore, err := store.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer redisStore.Close()
		kv = redisStore
	} else {
		logger.Printf("REDIS_ADDR not set, keeping session state in memory")
		kv = store.NewMemory()
	}

	cartService := cartsvc.New(kv)
	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:  catalogsvc.New(productRepo, categoryRepo),
		Carts:    cartService,
		Checkout: checkoutsvc.New(cartService),
		Auth:     authsvc.New(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		Builder:  buildersvc.New(kv, projectRepo, cfg.BlueprintDelay),
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
