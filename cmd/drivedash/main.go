package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"drivedash/internal/alerting"
	"drivedash/internal/cache"
	"drivedash/internal/config"
	"drivedash/internal/handler"
	"drivedash/internal/hub"
	"drivedash/internal/middleware"
	"drivedash/internal/monitor"
	"drivedash/internal/observability"
	"drivedash/internal/simulator"
	"drivedash/internal/store"
	"drivedash/pkg/drivesim"
	"drivedash/pkg/fleetdata"
)

func main() {
	// .env is optional, env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting drivedash server",
		"log_level", cfg.LogLevel.String(),
		"http_addr", cfg.HTTPAddr,
		"tick_interval", cfg.TickInterval.String(),
		"redis_enabled", cfg.RedisEnabled,
	)

	dataset, err := fleetdata.Load(cfg.FleetDataPath)
	if err != nil {
		logger.Error("failed to load fleet dataset", "error", err)
		os.Exit(1)
	}

	fleetStore := store.NewFleetStore()
	fleetStore.Load(dataset)

	telemetryStore := store.NewTelemetryStore(cfg.AlertHistorySize)
	reportStore := store.NewReportStore()

	speedMonitor := monitor.New(
		fleetStore.Zones(),
		cfg.DefaultSpeedLimit,
		monitor.WithCooldown(cfg.WarningCooldown),
	)

	wsHub := hub.NewHub(logger)

	var journal *cache.Journal
	if cfg.RedisEnabled {
		redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without journal", "error", err)
		} else {
			defer redisCache.Close()
			journal = cache.NewJournal(redisCache, int64(cfg.JournalSize), cfg.CacheTTL, logger)
			journal.WarmStart(context.Background(), telemetryStore)
		}
	}

	// avoid a typed-nil interface when the journal is disabled
	var alertJournal alerting.Journal
	var telemetrySaver simulator.TelemetrySaver
	if journal != nil {
		alertJournal = journal
		telemetrySaver = journal
	}

	alertService := alerting.New(speedMonitor, telemetryStore, wsHub, alertJournal, cfg.WarningAutoDismiss, logger)

	route := drivesim.DefaultRoute()
	speeds := drivesim.NewSpeedProfile(rand.New(rand.NewSource(time.Now().UnixNano())))
	sim := simulator.New(route, speeds, speedMonitor, alertService, telemetryStore, wsHub, telemetrySaver, cfg.TickInterval, logger)

	dashboardHandler := handler.NewDashboardHandler(telemetryStore, fleetStore, alertService)
	reportHandler := handler.NewReportHandler(reportStore, alertService, wsHub, logger)
	wsHandler := handler.NewWSHandler(wsHub, telemetryStore, reportStore, logger)
	healthHandler := handler.NewHealthHandler(sim, fleetStore)
	statsHandler := handler.NewStatsHandler(telemetryStore, fleetStore, reportStore)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/telemetry", dashboardHandler.GetTelemetry)
	mux.HandleFunc("GET /v1/zones", dashboardHandler.ListZones)
	mux.HandleFunc("GET /v1/driver", dashboardHandler.GetDriver)
	mux.HandleFunc("GET /v1/vehicle", dashboardHandler.GetVehicle)
	mux.HandleFunc("GET /v1/deliveries", dashboardHandler.ListDeliveries)
	mux.HandleFunc("GET /v1/alerts", dashboardHandler.ListAlerts)
	mux.HandleFunc("POST /v1/alerts/acknowledge", dashboardHandler.AcknowledgeAlert)
	mux.HandleFunc("GET /v1/notifications", dashboardHandler.ListNotifications)

	mux.HandleFunc("POST /v1/reports", reportHandler.CreateReport)
	mux.HandleFunc("GET /v1/reports", reportHandler.ListReports)
	mux.HandleFunc("GET /v1/reports/{id}", reportHandler.GetReport)
	mux.HandleFunc("POST /v1/reports/{id}/status", reportHandler.UpdateReportStatus)

	mux.HandleFunc("/v1/ws", wsHandler.ServeWS)

	mux.HandleFunc("GET /v1/stats", statsHandler.GetStats)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow, cfg.RateLimitWhitelist, logger)
	rateLimiter.OnBlocked = func() {
		handler.ServerStats.IncRateLimitBlocked()
		observability.RateLimitedRequests.Inc()
	}

	root := handler.CORSMiddleware(handler.GzipMiddleware(rateLimiter.Middleware(mux)))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go wsHub.Run(ctx)
	go sim.Run(ctx)

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
