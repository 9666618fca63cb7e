package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumeEditor/internal/api"
	"resumeEditor/internal/autosave"
	"resumeEditor/internal/config"
	"resumeEditor/internal/database"
	"resumeEditor/internal/editor"
	"resumeEditor/internal/notify"
	"resumeEditor/internal/patch"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("api bootstrapped",
		slog.String("db_host", cfg.Database.Host),
		slog.Int("db_port", cfg.Database.Port),
		slog.String("db_name", cfg.Database.Name),
		slog.String("persistence", cfg.Editor.Persistence),
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready")
	repo := database.NewResumeRepository(db)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	publisher := notify.NewPublisher(redisClient, logger)

	var remote autosave.Remote = repo
	onResult := publisher.SyncResultHook()
	if cfg.Editor.Persistence == config.PersistenceQueue {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
		defer asynqClient.Close()
		remote = autosave.NewQueueRemote(asynqClient)

		// 入队成功不代表已落库，保存结果由 worker 发布。
		publishFailure := onResult
		onResult = func(resumeID string, err error) {
			if err != nil {
				publishFailure(resumeID, err)
			}
		}
	}

	sessions := editor.NewManager(repo, func(resumeID string) editor.Syncer {
		return autosave.New(remote, autosave.Options{
			Window:   cfg.Editor.Debounce(),
			Logger:   logger.With(slog.String("resume_id", resumeID)),
			OnResult: onResult,
		})
	}, publisher, cfg.Editor.HistoryLimit, logger)

	consumer := patch.NewConsumer(patch.NewRedisTracker(redisClient, cfg.Editor.PatchCallTTL), logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Dependencies{
		Repo:           repo,
		Sessions:       sessions,
		Patches:        consumer,
		Redis:          redisClient,
		Logger:         logger,
		AllowedOrigins: cfg.API.Origins(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start api server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}
	if err := sessions.CloseAll(shutdownCtx); err != nil {
		logger.Error("flush editor sessions failed", slog.Any("error", err))
	}
	logger.Info("api stopped")
}
