package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-tracker/internal/bot"
	"task-tracker/internal/config"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	db, err := repository.NewCacheDB(cfg.CacheDB)
	if err != nil {
		log.Fatalf("cache db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	client := repository.NewClient(cfg.APIURL, cfg.HTTPTimeout, logger)
	userRepo := repository.NewUserRepository(client)
	categoryRepo := repository.NewCategoryRepository(client)
	taskRepo := repository.NewTaskRepository(client, loc)
	subscriberRepo := repository.NewSubscriberRepository(db)

	digestSvc := service.NewDigestService(taskRepo, loc)

	telegramBot, err := bot.New(cfg.BotToken, userRepo, categoryRepo, taskRepo, subscriberRepo, digestSvc, loc, logger)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	if cfg.DigestTime != "" {
		scheduler := service.NewSchedulerService(loc)
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDailyDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("digest", "err", err)
			}
		}); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	logger.Info("task tracker bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	logger.Info("shutdown complete")
}
