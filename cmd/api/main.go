package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel/internal/api"
	"hotel/internal/auth"
	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/google"
	"hotel/internal/logging"
	"hotel/internal/metrics"
	"hotel/internal/repository"
	"hotel/internal/service"
	"hotel/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(ctx, cfg, &logger)
	if redisClient != nil {
		defer (func() { _ = repository.Close(redisClient) })()
	}
	sessionStore := initSessionStore(redisClient, &logger)
	sessions := auth.NewSessions(cfg.Session.Secret, time.Duration(cfg.Session.TTLSeconds)*time.Second, cfg.Session.Secure, sessionStore, db)

	eventBus := events.NewEventBus(&logger)
	metrics.Subscribe(eventBus)
	initTelegram(cfg, eventBus, &logger)
	if forwarder := initAMQP(cfg, eventBus, &logger); forwarder != nil {
		defer (func() { _ = forwarder.Close() })()
	}

	sheetsWorker := initGoogleSheets(ctx, cfg, db, redisClient, &logger)
	var syncWorker domain.SyncWorker
	if sheetsWorker != nil {
		syncWorker = sheetsWorker
	}

	svc := api.Services{
		Users:        service.NewUserService(db, sessionStore, &logger),
		Rooms:        service.NewRoomService(db, db, eventBus, &logger),
		Reservations: service.NewReservationService(db, eventBus, syncWorker, cfg.Reservations.PreventOverlap, &logger),
		Staff:        service.NewStaffService(db, &logger),
		Overview:     service.NewOverviewService(db),
	}

	httpServer := api.NewHTTPServer(cfg, db, sessions, svc, &logger)
	if sheetsWorker != nil {
		httpServer.OnSeed(sheetsWorker.EnqueueFullSync)
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(db, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	var grpcServer *api.GRPCServer
	if cfg.API.GRPC.Enabled {
		grpcServer, err = api.NewGRPCServer(&cfg.API, db, &logger)
		if err != nil {
			logger.Error().Err(err).Msg("create grpc server")
			return err
		}
		go grpcServer.WatchReadiness(ctx, 15*time.Second)
	}

	startMetrics(ctx, cfg, &logger)

	return startServers(ctx, grpcServer, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, sessions fall back to memory until it recovers")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}
	return redisClient
}

// initSessionStore prefers redis and keeps an in-memory store ready for outages.
func initSessionStore(redisClient *redis.Client, logger *zerolog.Logger) domain.SessionStore {
	memory := repository.NewMemorySessionStore()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverSessionStore(repository.NewRedisSessionStore(redisClient), memory, logging.Component(logger, "sessions"))
}

func initTelegram(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram bot init failed, continuing without notifications")
		return
	}
	botAPI.Debug = cfg.Telegram.Debug

	notifier := service.NewTelegramService(botAPI, cfg.Telegram.ChatID, logging.Component(logger, "telegram"))
	notifier.Subscribe(bus)
	logger.Info().Str("bot", botAPI.Self.UserName).Msg("telegram notifications enabled")
}

func initAMQP(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) *events.AMQPForwarder {
	if cfg.AMQP.URL == "" {
		return nil
	}

	forwarder, err := events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Queue, logging.Component(logger, "amqp"))
	if err != nil {
		logger.Warn().Err(err).Msg("amqp connection failed, events stay in-process")
		return nil
	}
	bus.Subscribe(events.AllEvents, forwarder.Handle)
	logger.Info().Str("queue", cfg.AMQP.Queue).Msg("forwarding events to amqp")
	return forwarder
}

func initGoogleSheets(
	ctx context.Context,
	cfg *config.Config,
	db *database.DB,
	redisClient *redis.Client,
	logger *zerolog.Logger,
) *worker.SheetsWorker {
	if cfg.Google.CredentialsFile == "" || cfg.Google.ReservationsSpreadsheetID == "" {
		return nil
	}

	sheetsService, err := google.NewSheetsService(ctx, cfg.Google.CredentialsFile, cfg.Google.ReservationsSpreadsheetID, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	if err := sheetsService.TestConnection(ctx); err != nil {
		email, _ := google.ServiceAccountEmail(cfg.Google.CredentialsFile)
		logger.Warn().Err(err).Str("service_account", email).Msg("spreadsheet not reachable, share it with the service account")
		return nil
	}
	go sheetsService.Start(ctx)

	sheetsWorker := worker.NewSheetsWorker(db, sheetsService, redisClient, worker.DefaultRetryPolicy(), logger)
	go sheetsWorker.Start(ctx)

	logger.Info().Msg("google sheets connected")
	return sheetsWorker
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServers(
	ctx context.Context,
	grpcServer *api.GRPCServer,
	httpServer *api.HTTPServer,
	cfg *config.Config,
	logger *zerolog.Logger,
) error {
	if grpcServer != nil {
		go func() {
			if err := grpcServer.Serve(); err != nil {
				logger.Error().Err(err).Msg("grpc server stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Bool("grpc", grpcServer != nil).Msg("API server started")

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("http server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Shutdown(shutdownCtx)
	}
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return runErr
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
