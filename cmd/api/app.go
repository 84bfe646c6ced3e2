package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/habit-garden/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habit-garden/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-garden/internal/adapters/storage"
	"github.com/comitanigiacomo/habit-garden/internal/config"
	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/gamification"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
	"github.com/comitanigiacomo/habit-garden/internal/core/workers"
)

// app owns every long-lived resource of the server.
type app struct {
	router    *gin.Engine
	store     storage.Backend
	redis     *redis.Client
	worker    *workers.ProgressWorker
	scheduler *workers.ReminderScheduler
	stop      context.CancelFunc
	logger    *zap.Logger
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	startTime := time.Now()

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := domain.NewSystemClock(loc)

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	store, err := storage.Open(ctx, storage.Options{
		Driver:     cfg.Storage.Driver,
		DataDir:    cfg.Storage.DataDir,
		SQLitePath: cfg.Storage.SQLitePath,
		Redis:      rdb,
		KeyPrefix:  cfg.Storage.KeyPrefix,
	})
	if err != nil {
		closeRedis(rdb)
		return nil, err
	}
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	repo := repository.NewStorageRepository(store)

	var progressCache domain.ProgressCache
	if rdb != nil {
		progressCache = repository.NewCachedProgressRepository(rdb, cfg.Redis.ProgressTTL, logger)
	} else {
		progressCache = repository.NewInMemoryProgressCache()
	}

	notifier := workers.NewLogNotifier(logger)
	engine := gamification.NewEngine(cfg.Points)

	// the worker refreshes through the progress service, which needs the
	// habit service, which enqueues into the worker
	queue := &lazyQueue{}
	habitService := services.NewHabitService(repo, repo, progressCache, queue, logger)
	progressService := services.NewProgressService(repo, habitService, engine, progressCache, clock, logger)
	worker := workers.NewProgressWorker(progressService, cfg.Workers.QueueSize, logger)
	queue.worker = worker

	scheduler := workers.NewReminderScheduler(clock, notifier, logger)
	reminderService := services.NewReminderService(repo, habitService, scheduler, logger)
	habitService.WithReminders(reminderService)
	completionService := services.NewCompletionService(repo, habitService, clock, notifier, progressCache, queue, logger).
		WithReminders(reminderService)
	statsService := services.NewStatsService(repo, habitService, clock)
	authService := services.NewAuthService(repo)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, repo)

	workerCtx, stop := context.WithCancel(context.Background())
	worker.Start(workerCtx)

	a := &app{
		store:     store,
		redis:     rdb,
		worker:    worker,
		scheduler: scheduler,
		stop:      stop,
		logger:    logger,
	}

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	restored, err := reminderService.Restore(ctx, ids)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to restore reminders: %w", err)
	}
	logger.Info("reminders restored", zap.Int("profiles", len(ids)), zap.Int("scheduled", restored))

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		ProgressHandler:   adapterHTTP.NewProgressHandler(progressService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		ReminderHandler:   adapterHTTP.NewReminderHandler(reminderService),
		TokenService:      tokenService,
		Redis:             rdb,
		RateLimit:         cfg.RateLimit.Requests,
		RateWindow:        cfg.RateLimit.Window,
		StorageDriver:     cfg.Storage.Driver,
		Logger:            logger,
		StartTime:         startTime,
	})

	return a, nil
}

// close stops the background work first, then releases storage and redis.
func (a *app) close() error {
	a.scheduler.Close()

	a.stop()
	select {
	case <-a.worker.Done():
	case <-time.After(5 * time.Second):
		a.logger.Warn("progress worker did not stop in time")
	}

	err := a.store.Close()
	if a.redis != nil {
		err = errors.Join(err, a.redis.Close())
	}
	return err
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}

type lazyQueue struct {
	worker *workers.ProgressWorker
}

func (q *lazyQueue) Enqueue(profileID string) {
	if q.worker != nil {
		q.worker.Enqueue(profileID)
	}
}
