package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"turni/internal/api"
	"turni/internal/bot"
	"turni/internal/config"
	"turni/internal/database"
	"turni/internal/domain"
	"turni/internal/events"
	"turni/internal/google"
	"turni/internal/logging"
	"turni/internal/models"
	"turni/internal/repository"
	"turni/internal/service"
	"turni/internal/worker"

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
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := initDatabase(cfg, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, stateService := initStateService(ctx, cfg, &logger)

	// The Sheets mirror is optional; the bot runs fine without it.
	var sheetsWorker *worker.SheetsWorker
	if sheetsService := initGoogleSheets(ctx, cfg, &logger); sheetsService != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker = worker.NewSheetsWorker(db, sheetsService, redisClient, retryPolicy, &logger)
		go sheetsWorker.Start(ctx)
	}

	eventBus := events.NewEventBus()
	subscribeAuditLog(eventBus, &logger)

	if cfg.API.Enabled {
		apiServer := api.NewHTTPServer(cfg.API, db, &logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			_ = apiServer.Shutdown(context.Background())
		}()
	}

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	return startBot(ctx, cfg, db, stateService, sheetsWorker, eventBus, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create database directory")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create exports directory")
		return err
	}
	return nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize database")
		return nil, err
	}

	schedulePath := os.Getenv("SCHEDULE_PATH")
	if schedulePath == "" {
		schedulePath = "configs/schedule.yaml"
	}
	seed, err := config.LoadScheduleSeed(schedulePath)
	if err != nil {
		logger.Error().Err(err).Str("path", schedulePath).Msg("Failed to load schedule seed")
		return nil, err
	}

	if err := db.SeedSchedule(context.Background(), seed); err != nil {
		logger.Error().Err(err).Msg("Failed to seed weekly schedule")
		return nil, err
	}
	return db, nil
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if cfg.Google.CredentialsFile == "" || cfg.Google.BookingSpreadSheetID == "" {
		logger.Info().Msg("Google Sheets mirror disabled")
		return nil
	}

	sheetsSvc, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.BookingSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("Google Sheets connection test failed")
		return nil
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(models.DefaultStateTTL) * time.Second
	primaryRepo := repository.NewRedisStateRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemoryStateRepository(ttl)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("Prometheus metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics server error")
	}
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	db *database.DB,
	stateService *service.StateService,
	sheetsWorker *worker.SheetsWorker,
	eventBus *events.EventBus,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper, logger)

	bookingService := service.NewBookingService(db, db, eventBus, syncOrNil(sheetsWorker), logger)
	scheduleService := service.NewScheduleService(db, eventBus, logger)
	userService := service.NewUserService(tgService, cfg.Admins, cfg.Blacklist, logger)
	metrics := bot.NewMetrics()

	telegramBot, err := bot.NewBot(
		tgService, cfg, stateService, bookingService,
		scheduleService, userService, eventBus, metrics, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create bot")
		return err
	}

	if err := telegramBot.RegisterCommands(); err != nil {
		logger.Warn().Err(err).Msg("Failed to register bot commands")
	}

	logger.Info().Msg("Bot started...")
	telegramBot.StartReminders(ctx)
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// syncOrNil keeps the interface value nil when no worker is configured. A
// typed nil inside the interface would defeat the service's nil checks.
func syncOrNil(w *worker.SheetsWorker) domain.SyncWorker {
	if w == nil {
		return nil
	}
	return w
}

// subscribeAuditLog writes every domain event to the structured log.
func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(ev *events.Event) error {
		logger.Info().Str("event", ev.Type).RawJSON("payload", ev.Payload).Msg("domain event")
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingCanceled, handler)
	bus.Subscribe(events.EventScheduleUpdated, func(ev *events.Event) error {
		var payload events.ScheduleEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Msg("event bus: decode schedule payload")
			return nil
		}
		logger.Info().Int("weekday", payload.Weekday).Str("trash_types", payload.TrashTypes).Msg("schedule updated")
		return nil
	})
}
