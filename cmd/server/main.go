package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/eyrie/backend/internal/application/billing"
	clientapp "github.com/eyrie/backend/internal/application/client"
	propertyapp "github.com/eyrie/backend/internal/application/property"
	"github.com/eyrie/backend/internal/infrastructure/cache"
	"github.com/eyrie/backend/internal/infrastructure/config"
	"github.com/eyrie/backend/internal/infrastructure/logger"
	"github.com/eyrie/backend/internal/infrastructure/persistence"
	"github.com/eyrie/backend/internal/interfaces/http/handler"
	"github.com/eyrie/backend/internal/interfaces/http/middleware"
	"github.com/eyrie/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Eyrie backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if !cfg.App.IsProduction() {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Listing cache: redis when configured and reachable, in-memory otherwise
	listingCache := cache.NewListingCache(cfg.Cache, cfg.Redis, log)

	// Repositories and transaction scope
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	unitService := propertyapp.NewUnitService(unitRepo, listingCache, log)
	clientService := clientapp.NewClientService(scope, listingCache, log)
	paymentService := billingapp.NewPaymentService(scope.BillingScope())

	// HTTP handlers
	unitHandler := handler.NewUnitHandler(unitService)
	clientHandler := handler.NewClientHandler(clientService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	router.NewRouter(engine).
		Register(systemHandler, unitHandler, clientHandler, paymentHandler).
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
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if closer, ok := listingCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error("Error closing listing cache", zap.Error(err))
		}
	}

	log.Info("Server stopped")
}
