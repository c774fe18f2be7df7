package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/finashka_bot/internal/app"
	"github.com/Freeeeeet/finashka_bot/internal/config"
	"github.com/Freeeeeet/finashka_bot/internal/controller"
	"github.com/Freeeeeet/finashka_bot/internal/controller/flows"
	"github.com/Freeeeeet/finashka_bot/internal/controller/state"
	"github.com/Freeeeeet/finashka_bot/internal/repository"
	"github.com/Freeeeeet/finashka_bot/internal/ruz"
	"github.com/Freeeeeet/finashka_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	logger.Info("Starting finashka bot",
		zap.String("environment", cfg.Environment),
		zap.String("homework_driver", cfg.HomeworkDriver),
		zap.Bool("webhook", cfg.UseWebhook()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	os.Exit(finish(logger, err))
}

// finish пишет итог работы, сбрасывает буфер логгера и возвращает код выхода
func finish(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		code = 1
	} else {
		logger.Info("Bot stopped")
	}

	_ = logger.Sync()
	return code
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openHomeworkStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	timetable, err := ruz.New(ruz.Options{
		BaseURL:  cfg.RuzBaseURL,
		Timeout:  cfg.HTTPTimeout,
		CacheTTL: cfg.SearchCacheTTL,
	}, logger.Named("ruz"))
	if err != nil {
		return fmt.Errorf("create timetable client: %w", err)
	}
	defer timetable.Close()

	homework := service.NewHomeworkService(store, cfg.HomeworkFilesDir, logger)
	states := state.NewManager()

	router := controller.NewRouter(
		states,
		flows.NewGroupFlow(timetable, homework, logger),
		flows.NewTeacherFlow(timetable, logger),
		flows.NewHomeworkFlow(homework, logger),
		cfg.Location(),
		logger,
	)
	ctrl := controller.NewBotController(router, logger)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithDefaultHandler(ctrl.HandleUpdate),
		bot.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	if err := ctrl.RegisterCommands(ctx, b); err != nil {
		logger.Warn("Continuing without commands menu", zap.Error(err))
	}

	scheduler, err := app.NewScheduler(states, cfg.StateIdleTTL, logger)
	if err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	if cfg.UseWebhook() {
		return runWebhook(ctx, cfg, b, logger)
	}

	if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	logger.Info("Starting long polling")
	b.Start(ctx)
	return nil
}

func runWebhook(ctx context.Context, cfg *config.Config, b *bot.Bot, logger *zap.Logger) error {
	if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{URL: cfg.WebhookURL}); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	srv := app.NewWebhookServer(cfg.WebhookListen, app.WebhookPath(cfg.WebhookURL), b.WebhookHandler(), logger)
	srv.Start()

	go b.StartWebhook(ctx)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openHomeworkStore открывает хранилище ДЗ и применяет миграции
func openHomeworkStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.HomeworkStore, func(), error) {
	switch cfg.HomeworkDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.HomeworkDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}

		mg, err := app.NewPostgresMigrator(pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		defer mg.Close()

		if err := mg.Run(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}

		logger.Info("✅ Connected to PostgreSQL homework store")
		return repository.NewPostgresHomeworkRepository(pool, logger), pool.Close, nil

	default:
		db, err := repository.OpenSQLite(cfg.HomeworkDSN)
		if err != nil {
			return nil, nil, err
		}

		mg, err := app.NewSQLiteMigrator(db, logger)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := mg.Run(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		logger.Info("✅ Opened SQLite homework store", zap.String("path", cfg.HomeworkDSN))
		return repository.NewSQLiteHomeworkRepository(db, logger), func() { db.Close() }, nil
	}
}
