package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/application/dashboard"
	"github.com/shopops/backend/internal/application/messaging"
	"github.com/shopops/backend/internal/application/sales"
	"github.com/shopops/backend/internal/application/shipping"
	courierdomain "github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/cache"
	"github.com/shopops/backend/internal/infrastructure/commerce"
	"github.com/shopops/backend/internal/infrastructure/config"
	courierinfra "github.com/shopops/backend/internal/infrastructure/courier"
	"github.com/shopops/backend/internal/infrastructure/directory"
	"github.com/shopops/backend/internal/infrastructure/expense"
	"github.com/shopops/backend/internal/infrastructure/insight"
	"github.com/shopops/backend/internal/infrastructure/logger"
	"github.com/shopops/backend/internal/infrastructure/persistence"
	"github.com/shopops/backend/internal/infrastructure/settings"
	"github.com/shopops/backend/internal/infrastructure/sms"
	"github.com/shopops/backend/internal/infrastructure/tracking"
	"github.com/shopops/backend/internal/interfaces/http/handler"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
	"github.com/shopops/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShopOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Open the built-in local store only when some upstream URL is absent and
	// a local substitute is needed.
	var store *persistence.Store
	needLocal := cfg.Upstream.SettingsStoreURL == "" ||
		cfg.Upstream.TrackingStoreURL == "" ||
		cfg.Upstream.DirectoryURL == "" ||
		cfg.Upstream.ExpenseStoreURL == ""
	if needLocal {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		store, err = persistence.Open(&cfg.Store, gormLog)
		if err != nil {
			log.Fatal("Failed to open local store", zap.Error(err))
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("Error closing local store", zap.Error(err))
			}
		}()
		log.Info("Local store ready", zap.String("driver", cfg.Store.Driver))
	}

	// Stores: remote client when a URL is configured, local otherwise.
	var settingsStore shared.SettingsStore
	if cfg.Upstream.SettingsStoreURL != "" {
		settingsStore = settings.NewClient(cfg.Upstream.SettingsStoreURL, cfg.Upstream.FetchTimeout)
	} else {
		settingsStore = persistence.NewLocalSettingsStore(store.DB)
	}

	var trackingStore shop.TrackingStore
	if cfg.Upstream.TrackingStoreURL != "" {
		trackingStore = tracking.NewClient(cfg.Upstream.TrackingStoreURL, log, cfg.Upstream.FetchTimeout)
	} else {
		trackingStore = persistence.NewLocalTrackingStore(store.DB, log)
	}

	var customerDirectory shop.CustomerDirectory
	if cfg.Upstream.DirectoryURL != "" {
		customerDirectory = directory.NewClient(cfg.Upstream.DirectoryURL, cfg.Upstream.WriteTimeout)
	} else {
		customerDirectory = persistence.NewLocalCustomerDirectory(store.DB)
	}

	var expenseSource shop.ExpenseSource
	if cfg.Upstream.ExpenseStoreURL != "" {
		expenseSource = expense.NewClient(cfg.Upstream.ExpenseStoreURL, log, cfg.Upstream.FetchTimeout)
	} else {
		expenseSource = persistence.NewLocalExpenseStore(store.DB)
	}

	// Adapters
	wooAdapter := commerce.NewWooAdapter(settingsStore, trackingStore, log, cfg.Upstream.FetchTimeout)
	steadfast := courierinfra.NewSteadfastAdapter(settingsStore, log, cfg.Upstream.WriteTimeout)
	pathao := courierinfra.NewPathaoAdapter(settingsStore, log, cfg.Upstream.WriteTimeout)
	registry := courierdomain.NewRegistry(steadfast, pathao)
	smsGateway := sms.NewGateway(cfg.Upstream.SMSGatewayURL, settingsStore, log, cfg.Upstream.WriteTimeout)
	insightGenerator := insight.NewGenerator(cfg.Upstream.InsightAPIURL, settingsStore, log, cfg.Upstream.WriteTimeout)
	snapshotCache := cache.NewSnapshotCache(cfg.Redis, log)

	// Application services
	reconcileService := dashboard.NewReconcileService(wooAdapter, customerDirectory, expenseSource, snapshotCache, log)
	posService := sales.NewPOSService(reconcileService, customerDirectory, log)
	consignmentService := shipping.NewConsignmentService(registry, trackingStore, log)
	smsService := messaging.NewSMSService(smsGateway, settingsStore, log)
	insightService := messaging.NewInsightService(insightGenerator, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewHealthHandler(version)).
		Register(handler.NewDashboardHandler(reconcileService, insightService)).
		Register(handler.NewOrderHandler(reconcileService, posService, consignmentService)).
		Register(handler.NewCatalogHandler(reconcileService)).
		Register(handler.NewCustomerHandler(customerDirectory)).
		Register(handler.NewExpenseHandler(expenseSource)).
		Register(handler.NewCourierHandler(consignmentService, pathao)).
		Register(handler.NewSMSHandler(smsService)).
		Register(handler.NewSettingsHandler(settingsStore, wooAdapter))
	r.Setup()

	// Periodic reconciliation, when enabled. The first pass warms the
	// snapshot so the dashboard is populated before anyone hits refresh.
	rootCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	if cfg.Reconcile.AutoRefreshInterval > 0 {
		go runAutoRefresh(rootCtx, reconcileService, cfg.Reconcile.AutoRefreshInterval, log)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runAutoRefresh reconciles immediately and then on every tick until the
// context is cancelled.
func runAutoRefresh(ctx context.Context, engine *dashboard.ReconcileService, interval time.Duration, log *zap.Logger) {
	if _, err := engine.Reconcile(ctx); err != nil {
		log.Warn("Initial reconciliation failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := engine.Reconcile(ctx); err != nil {
				log.Warn("Scheduled reconciliation failed", zap.Error(err))
			}
		}
	}
}
