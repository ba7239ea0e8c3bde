package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neyamat7/pos-inventory-sub000/internal/application/finance"
	tradeapp "github.com/neyamat7/pos-inventory-sub000/internal/application/trade"
	"github.com/neyamat7/pos-inventory-sub000/internal/domain/shared/strategy"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/cache"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/config"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/logger"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/persistence"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/neyamat7/pos-inventory-sub000/internal/infrastructure/telemetry"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/handler"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// Log export has to exist before the logger so the bridge core can be teed in
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, logProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting expense settlement service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	metrics, err := telemetry.NewEngineMetrics(meterProvider.Meter(cfg.Telemetry.ServiceName))
	if err != nil {
		log.Fatal("Failed to create engine metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if cfg.Database.Driver == "sqlite" {
			dbSystem = "sqlite"
		}
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:  true,
			DBSystem: dbSystem,
		}, log); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	// SQLite is the single-node mode; postgres schemas come from cmd/migrate
	if cfg.Database.Driver == "sqlite" || cfg.Database.AutoMigrate {
		if err := db.DB.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	settlementStore := persistence.NewGormSettlementStore(db.DB)

	// Cart sessions live in Redis when available
	cartStore, err := cache.NewCartStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}

	defaultStrategy := strategy.DistributionMethod(cfg.Engine.DefaultStrategy)

	// Application services
	cartService := tradeapp.NewCartService(cartStore, orderRepo,
		tradeapp.WithLogger(log),
		tradeapp.WithMetrics(metrics),
		tradeapp.WithMaxItems(cfg.Engine.MaxCartItems),
		tradeapp.WithDefaultStrategy(defaultStrategy),
	)
	paymentService := finance.NewPaymentService(lotRepo, paymentRepo, settlementStore, log, metrics)

	// HTTP
	engine := router.NewEngine(router.EngineConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tracerProvider.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
	}, log)

	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(context.Context) error { return db.Ping() }),
	}
	if pinger, ok := cartStore.(handler.Pinger); ok {
		checks["redis"] = pinger
	}
	handler.NewHealthHandler(cfg.App.Name, checks).RegisterRoutes(engine)

	router.NewRouter(engine).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewEngineHandler(defaultStrategy, metrics)).
		Register(handler.NewPaymentHandler(paymentService)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := cartStore.Close(); err != nil {
		log.Error("Error closing cart store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracing", zap.Error(err))
	}

	log.Info("Server exited gracefully", zap.Duration("uptime", time.Since(startedAt)))
	_ = logProvider.Shutdown(shutdownCtx, log)
}
