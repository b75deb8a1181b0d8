package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/pharmacare/backend/internal/application/catalog"
	identityapp "github.com/pharmacare/backend/internal/application/identity"
	notificationapp "github.com/pharmacare/backend/internal/application/notification"
	partnerapp "github.com/pharmacare/backend/internal/application/partner"
	reportapp "github.com/pharmacare/backend/internal/application/report"
	tradeapp "github.com/pharmacare/backend/internal/application/trade"
	"github.com/pharmacare/backend/internal/infrastructure/auth"
	"github.com/pharmacare/backend/internal/infrastructure/cache"
	"github.com/pharmacare/backend/internal/infrastructure/config"
	"github.com/pharmacare/backend/internal/infrastructure/event"
	"github.com/pharmacare/backend/internal/infrastructure/logger"
	"github.com/pharmacare/backend/internal/infrastructure/persistence"
	"github.com/pharmacare/backend/internal/interfaces/http/handler"
	"github.com/pharmacare/backend/internal/interfaces/http/middleware"
	"github.com/pharmacare/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PharmaCare Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	cacheStore, err := cache.NewStore(cfg, cfg.App.Name)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	log.Info("Cache initialized", zap.String("backend", cfg.Cache.Backend))

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, salesOrderRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo, productRepo)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, productRepo, customerRepo, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	dashboardService := reportapp.NewDashboardService(
		dashboardRepo, salesOrderRepo, productRepo, cacheStore, cfg.Cache.DashboardTTL, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// Event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	orderEventHandler := notificationapp.NewOrderEventHandler(notificationRepo, log)
	eventBus.Subscribe(orderEventHandler)

	lowStockHandler := notificationapp.NewLowStockHandler(productRepo, notificationRepo, log)
	eventBus.Subscribe(lowStockHandler)

	summaryInvalidator := reportapp.NewSummaryInvalidator(dashboardService)
	eventBus.Subscribe(summaryInvalidator)

	salesOrderService.SetEventPublisher(eventBus)

	log.Info("Event handlers registered",
		zap.Strings("order_notification_events", orderEventHandler.EventTypes()),
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
		zap.Strings("dashboard_invalidation_events", summaryInvalidator.EventTypes()),
	)

	// HTTP layer
	middleware.SetupValidator()
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)

	engine := router.New(router.Config{
		Env:        cfg.App.Env,
		HTTP:       cfg.HTTP,
		Logger:     log,
		JWTService: jwtService,
		System:     systemHandler,
		Registrars: []router.RouteRegistrar{
			handler.NewAuthHandler(authService),
			handler.NewCategoryHandler(categoryService),
			handler.NewProductHandler(productService),
			handler.NewCustomerHandler(customerService),
			handler.NewSupplierHandler(supplierService),
			handler.NewSalesOrderHandler(salesOrderService),
			handler.NewNotificationHandler(notificationService),
			handler.NewReportHandler(dashboardService),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
