package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/seed"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

// Swappable for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

// newServer wires repositories, services, and the middleware chain
// into the root handler.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	categoryRepo := category.NewRepository(database)
	productRepo := product.NewRepository(database)
	userRepo := user.NewRepository(database)
	orderRepo := order.NewRepository(database)

	productSvc := product.NewService(productRepo, categoryRepo)
	userSvc := user.NewService(userRepo)
	orderSvc := order.NewService(orderRepo, productRepo, userRepo)
	payments := payment.NewMockProvider()

	handler := httpapi.NewHandler(userSvc, categoryRepo, productSvc, orderSvc, payments)

	mux := httpapi.NewRouter(handler)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var root http.Handler = mux
	root = middleware.RateLimit(root)
	root = middleware.Auth(root)
	root = logger.LoggingMiddleware(root)
	root = logger.RequestIDMiddleware(root)
	return root
}

// seedStartup runs the catalog initializers. A failure here is logged
// but does not prevent the server from starting.
func seedStartup(ctx context.Context, cfg *config.Config, database *sql.DB) {
	categoryRepo := category.NewRepository(database)
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, categoryRepo)

	seeder := seed.New(cfg, categoryRepo, productRepo, productSvc)
	if err := seeder.Run(ctx); err != nil {
		logger.L().Warn("startup seeding failed", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	seedStartup(context.Background(), cfg, database)

	handler := newServer(cfg, database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, handler)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
