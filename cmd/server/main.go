package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	powerupapp "github.com/cecypo/powerpack-backend/internal/application/powerup"
	reconapp "github.com/cecypo/powerpack-backend/internal/application/reconciliation"
	sellingapp "github.com/cecypo/powerpack-backend/internal/application/selling"
	settingsapp "github.com/cecypo/powerpack-backend/internal/application/settings"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/cache"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/config"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/logger"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/persistence"
	"github.com/cecypo/powerpack-backend/internal/interfaces/http/handler"
	"github.com/cecypo/powerpack-backend/internal/interfaces/http/middleware"
	"github.com/cecypo/powerpack-backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PowerPack backend",
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
	log.Info("Database connected")

	settingsCache, err := cache.NewSettingsCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize settings cache", zap.Error(err))
	}

	// Repositories
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	taxRepo := persistence.NewGormTaxTemplateRepository(db.DB)
	binRepo := persistence.NewGormBinRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	priceRepo := persistence.NewGormPriceRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	reconEngine := persistence.NewGormReconciliationEngine(db.DB, log)

	// Application services
	featureService := settingsapp.NewFeatureService(settingsRepo, settingsCache, log,
		settingsapp.WithCacheTTL(cfg.Cache.SettingsTTL))
	itemDetailService := powerupapp.NewItemDetailService(
		itemRepo, binRepo, priceRepo, warehouseRepo, taxRepo, invoiceRepo, featureService, log)
	priceService := powerupapp.NewPriceService(priceRepo, itemRepo, featureService, log)
	taxIDService := powerupapp.NewTaxIDService(partyRepo, featureService, log)
	overdueService := powerupapp.NewOverdueService(invoiceRepo, featureService, log)
	invoiceService := sellingapp.NewInvoiceService(invoiceRepo, featureService, log)
	zeroAllocService := reconapp.NewZeroAllocationService(reconEngine, featureService, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.Secure(),
		middleware.MaxBodySize(cfg.HTTP.MaxBodySize),
	)

	// Routes
	router.NewRouter(engine).
		Register(handler.NewSystemHandler(db, log)).
		Register(handler.NewSettingsHandler(featureService, log)).
		Register(handler.NewPowerupHandler(itemDetailService, priceService, taxIDService, overdueService, log)).
		Register(handler.NewSellingHandler(invoiceService, log)).
		Register(handler.NewReconciliationHandler(zeroAllocService, log)).
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
	log.Info("Server stopped")
}
