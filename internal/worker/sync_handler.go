package worker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"resumeEditor/internal/database"
	"resumeEditor/internal/notify"
	"resumeEditor/internal/resume"
	"resumeEditor/internal/tasks"
)

// ResumeWriter 是同步任务落库所需的仓储接口。
type ResumeWriter interface {
	UpdateResume(ctx context.Context, id string, data *resume.Data) error
}

// Publisher 发布同步结果通知。
type Publisher interface {
	Publish(ctx context.Context, msg notify.Message) error
}

// SyncTaskHandler 负责消费简历同步任务。
type SyncTaskHandler struct {
	repo      ResumeWriter
	publisher Publisher
	logger    *slog.Logger
}

// NewSyncTaskHandler 创建任务处理器。
func NewSyncTaskHandler(repo ResumeWriter, publisher Publisher, logger *slog.Logger) *SyncTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncTaskHandler{repo: repo, publisher: publisher, logger: logger}
}

// ProcessTask 实现 asynq.Handler。任务不重试，失败结果通过通知频道告知编辑器。
func (h *SyncTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	payload, err := tasks.ParseResumeSyncPayload(t.Payload())
	if err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return errors.Join(err, asynq.SkipRetry)
	}

	log = log.With(slog.String("resume_id", payload.ResumeID))
	if id, ok := asynq.GetTaskID(ctx); ok {
		log = log.With(slog.String("task_id", id))
	}

	err = h.repo.UpdateResume(ctx, payload.ResumeID, payload.Data)
	if errors.Is(err, database.ErrResumeNotFound) {
		log.Warn("resume not found, skipping task")
		h.publish(ctx, log, notify.SyncResult(payload.ResumeID, err))
		return nil
	}

	h.publish(ctx, log, notify.SyncResult(payload.ResumeID, err))
	if err != nil {
		log.Error("write resume failed", slog.Any("error", err))
		return err
	}

	log.Info("resume sync task completed")
	return nil
}

func (h *SyncTaskHandler) publish(ctx context.Context, log *slog.Logger, msg notify.Message) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, msg); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
	}
}
