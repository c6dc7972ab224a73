package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebook/internal/api"
	"carebook/internal/config"
	"carebook/internal/daemon"
	"carebook/internal/insight"
	"carebook/internal/logger"
	"carebook/internal/middleware"
	"carebook/internal/monitoring"
	"carebook/internal/notifications"
	"carebook/internal/repository"
	"carebook/internal/service"
	"carebook/internal/settings"
	"carebook/internal/storage"
	"carebook/internal/stripe"
	"carebook/internal/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg := config.NewConfig()

	telemetry, err := monitoring.NewOpenTelemetry(cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.Error("Telemetry shutdown failed", "error", err)
		}
	}()

	log := logger.New(*cfg)

	// Repository: Postgres when configured, otherwise in-memory with demo
	// data so the app is usable out of the box.
	var repo repository.Repository
	if cfg.Database.Enabled {
		pool, err := repository.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			return err
		}
		defer pool.Close()
		repo = repository.NewPostgresRepository(pool)
	} else {
		memRepo := repository.NewMemoryRepository()
		if err := repository.Seed(ctx, memRepo, time.Now()); err != nil {
			log.Error("Failed to seed demo data", "error", err)
			return err
		}
		repo = memRepo
		log.Info("Running with in-memory repository and demo data")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	v := validator.New()

	settingsStore := settings.NewStore(redisClient, v)
	limiter := service.NewRateLimiter(redisClient)

	storageCfg := storage.StorageConfig{
		Type:      storage.StorageType(cfg.Storage.Type),
		LocalPath: cfg.Storage.LocalPath,
	}
	if storageCfg.Type == storage.StorageTypeS3 {
		storageCfg.S3 = &storage.S3Config{
			Bucket: cfg.Storage.S3Bucket,
			Region: cfg.Storage.S3Region,
		}
	}
	fileStore, err := storage.NewFactory(storageCfg).CreateStorage()
	if err != nil {
		log.Error("Failed to initialize file storage", "error", err)
		return err
	}

	payments := stripe.NewClient(log.Logger, cfg.Payments.StripeAPIKey)

	insightClient := insight.NewClient(cfg.Insight.BaseURL, cfg.Insight.APIKey, log.Logger)
	insightClient.SetModel(cfg.Insight.Model)
	insightClient.SetTimeout(cfg.Insight.Timeout)
	insightService := insight.NewService(insightClient, log.Logger)

	familyService := service.NewFamilyService(repo, v, log.Logger)
	recordService := service.NewRecordService(repo, fileStore, v, log.Logger)
	wellnessService := service.NewWellnessService(repo, v, log.Logger)
	billingService := service.NewBillingService(repo, &payments, v, log.Logger)
	pregnancyService := service.NewPregnancyService(repo, v, log.Logger)
	timelineService := service.NewTimelineService(repo, log.Logger)
	dashboardService := service.NewDashboardService(repo, log.Logger)
	searchService := service.NewSearchService(repo, log.Logger)
	emergencyService := service.NewEmergencyService(repo, log.Logger)
	reminderService := service.NewReminderService(repo, settingsStore, service.NewRedisFiredStore(redisClient), log.Logger)

	notifier := notifications.NewNotifier(log.Logger)

	handler := api.NewHandler(api.HandlerParams{
		Family:    familyService,
		Records:   recordService,
		Wellness:  wellnessService,
		Billing:   billingService,
		Pregnancy: pregnancyService,
		Timeline:  timelineService,
		Dashboard: dashboardService,
		Search:    searchService,
		Emergency: emergencyService,
		Reminders: reminderService,
		Insight:   insightService,
		Settings:  settingsStore,
		Limiter:   limiter,
		Notifier:  notifier,
		Telemetry: telemetry,
		Repo:      repo,
		Logger:    log.Logger,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.SecurityHeaders())

	handler.RegisterRoutes(app)

	manager := daemon.NewDaemonManager()
	manager.Add("reminder-scanner", daemon.ReminderScanTask(reminderService, notifier, telemetry, log.Logger))
	manager.Start(ctx)

	errChan := make(chan error, 1)
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		log.Info("Starting server", "addr", addr)
		errChan <- app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-errChan:
		if err != nil {
			log.Error("Server failed", "error", err)
			cancel()
			manager.Wait()
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}

	manager.Wait()
	return nil
}
