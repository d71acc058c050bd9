package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vendorhub/internal/assets"
	"vendorhub/internal/config"
	"vendorhub/internal/database"
	"vendorhub/internal/handler"
	"vendorhub/internal/metrics"
	"vendorhub/internal/notify"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"
	"vendorhub/internal/telemetry"
	"vendorhub/internal/worker"
)

const (
	serviceName = "vendorhub"
	version     = "0.1.0"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Init(serviceName, version, cfg.TracingEnabled)
	if err != nil {
		slog.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(ctx, cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(ctx, db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	store, err := assets.Open(cfg.AssetsDir)
	if err != nil {
		slog.Error("failed to open asset store", "dir", cfg.AssetsDir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Repositories
	users := repository.NewUserRepository(db)
	vendors := repository.NewVendorRepository(db)
	orders := repository.NewOrderRepository(db)
	menu := repository.NewMenuRepository(db)
	settings := repository.NewSettingsRepository(db)

	// Notifications
	var feed notify.Feed = notify.NewMemoryFeed()
	if cfg.RedisURL != "" {
		redisFeed, err := notify.NewRedisFeed(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisFeed.Close()
		feed = redisFeed
	}

	notifier := notify.NewMulti().
		Add("feed", notify.NewFeedNotifier(feed)).
		Add("log", notify.LogNotifier{})
	if cfg.RabbitURL != "" {
		rabbit, err := notify.NewRabbitNotifier(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			slog.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbit.Close()
		notifier.Add("rabbitmq", rabbit)
	}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kafkaNotifier := notify.NewKafkaNotifier(brokers, cfg.KafkaTopic)
		defer kafkaNotifier.Close()
		notifier.Add("kafka", kafkaNotifier)
	}
	slog.Info("notification sinks ready", "count", notifier.Len())

	// Services
	reg := metrics.NewRegistry()
	authSvc := service.NewAuthService(users, vendors, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := service.NewOrderService(orders, notifier, reg)
	settingsSvc := service.NewSettingsService(settings)

	// Worker
	autoAccept := worker.NewAutoAcceptWorker(settingsSvc, orderSvc, reg, cfg.AutoAcceptInterval)

	router := handler.NewRouter(handler.Services{
		Auth:          authSvc,
		Tokens:        authSvc,
		Orders:        orderSvc,
		Menu:          service.NewMenuService(menu),
		Profile:       service.NewProfileService(vendors, store, cfg.PublicBaseURL),
		Settings:      settingsSvc,
		Analytics:     service.NewAnalyticsService(orders, menu),
		Notifications: service.NewNotificationService(feed),
	}, store.Handler(), reg)

	var h http.Handler = router
	if cfg.TracingEnabled {
		h = telemetry.Middleware(serviceName, "/metrics", "/healthz")(router)
	}

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go autoAccept.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctxShut); err != nil {
		slog.Error("tracing shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
