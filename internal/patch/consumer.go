package patch

import (
	"context"
	"errors"
	"log/slog"

	"resumeEditor/internal/metrics"
	"resumeEditor/internal/resume"
)

// Updater 是文档的修改入口。
type Updater interface {
	Update(fn func(draft *resume.Data) error) error
}

// Result 描述一次工具调用结果的处理情况。
type Result struct {
	CallID  string      `json:"call_id"`
	Skipped bool        `json:"skipped"`
	Applied []Operation `json:"applied,omitempty"`
}

// Consumer 处理 AI 工具调用返回的补丁批次，同一调用 ID 只会应用一次。
type Consumer struct {
	tracker Tracker
	logger  *slog.Logger
}

func NewConsumer(tracker Tracker, logger *slog.Logger) *Consumer {
	if tracker == nil {
		tracker = NewMemoryTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{tracker: tracker, logger: logger}
}

// Apply 通过 u 应用补丁批次。callID 已应用过时直接跳过；
// 批次失败时撤销调用记录，返回 *InvalidPatchError。
func (c *Consumer) Apply(ctx context.Context, resumeID string, u Updater, callID string, ops []Operation) (Result, error) {
	log := c.logger.With(
		slog.String("resume_id", resumeID),
		slog.String("call_id", callID),
	)

	if callID == "" {
		return Result{}, errors.New("call id is required")
	}

	fresh, err := c.tracker.MarkApplied(ctx, resumeID, callID)
	if err != nil {
		return Result{}, err
	}
	if !fresh {
		metrics.PatchBatch("skipped")
		log.Info("patch call already applied, skipping")
		return Result{CallID: callID, Skipped: true}, nil
	}

	err = u.Update(func(draft *resume.Data) error {
		next, err := Apply(draft, ops)
		if err != nil {
			return err
		}
		*draft = *next
		return nil
	})
	if err != nil {
		if forgetErr := c.tracker.Forget(ctx, resumeID, callID); forgetErr != nil {
			log.Error("forget patch call failed", slog.Any("error", forgetErr))
		}
		metrics.PatchBatch("rejected")
		log.Warn("patch batch rejected", slog.Any("error", err))
		return Result{CallID: callID}, err
	}

	metrics.PatchBatch("applied")
	log.Info("patch batch applied", slog.Int("operations", len(ops)))
	return Result{CallID: callID, Applied: ops}, nil
}
