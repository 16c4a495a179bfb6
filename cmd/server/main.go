package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appaudit "github.com/ims/backend/internal/application/audit"
	appcatalog "github.com/ims/backend/internal/application/catalog"
	appinv "github.com/ims/backend/internal/application/inventory"
	apporders "github.com/ims/backend/internal/application/orders"
	appwh "github.com/ims/backend/internal/application/warehouses"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/infrastructure/logger"
	"github.com/ims/backend/internal/infrastructure/persistence"
	"github.com/ims/backend/internal/interfaces/http/handler"
	"github.com/ims/backend/internal/interfaces/http/middleware"
	"github.com/ims/backend/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting inventory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Database with a Gorm logger bridged to zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", zap.Error(err))
		}
	}()
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockEntryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scopes for multi-aggregate operations
	stockScope := persistence.NewGormStockTransactionScope(db.DB)
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Default warehouse for purchase receipts: config wins, otherwise the
	// warehouse flagged default in the database
	defaultWarehouseID := cfg.Inventory.DefaultWarehouseUUID()
	if defaultWarehouseID == uuid.Nil {
		if w, err := warehouseRepo.FindDefault(context.Background()); err == nil {
			defaultWarehouseID = w.ID
		} else {
			log.Warn("No default warehouse configured or flagged; purchase receipts will fail until one is set")
		}
	}

	// Application services
	ledgerService := appinv.NewLedgerService(stockRepo, productRepo, stockScope)
	transferService := appinv.NewTransferService(stockScope)
	orderService := apporders.NewOrderService(orderRepo, orderScope, defaultWarehouseID)
	historyService := appaudit.NewHistoryService(historyRepo)
	productService := appcatalog.NewProductService(productRepo, categoryRepo)
	categoryService := appcatalog.NewCategoryService(categoryRepo)
	warehouseService := appwh.NewWarehouseService(warehouseRepo)

	// HTTP handlers
	stockHandler := handler.NewStockHandler(ledgerService, transferService)
	orderHandler := handler.NewOrderHandler(orderService)
	historyHandler := handler.NewHistoryHandler(historyService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so every later stage can log it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.ResolveActor(userRepo))

	// Liveness and readiness outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(stockHandler).
		Register(orderHandler).
		Register(historyHandler).
		Register(productHandler).
		Register(categoryHandler).
		Register(warehouseHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
