// Package notify 通过 Redis Pub/Sub 把编辑器事件转发给 WebSocket 客户端。
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"resumeEditor/internal/editor"
	"resumeEditor/internal/errcode"
)

// 消息类型。
const (
	KindSync   = "sync"
	KindLocked = "locked"
	KindNotice = "notice"
)

// Message 是统一的 WebSocket 消息协议，字段名与前端解析保持一致。
type Message struct {
	Kind          string `json:"kind"`
	Status        string `json:"status,omitempty"`
	ResumeID      string `json:"resume_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Channel 返回简历的通知频道。
func Channel(resumeID string) string {
	return "resume_notify:" + resumeID
}

// SyncResult 根据一次远端写入的结果构造消息。
func SyncResult(resumeID string, err error) Message {
	if err != nil {
		return Message{
			Kind:         KindSync,
			Status:       "error",
			ResumeID:     resumeID,
			ErrorCode:    errcode.SyncFailed,
			ErrorMessage: err.Error(),
		}
	}
	return Message{Kind: KindSync, Status: "saved", ResumeID: resumeID, ErrorCode: errcode.OK}
}

// Publisher 把消息发布到 Redis。
type Publisher struct {
	client redis.Cmdable
	logger *slog.Logger
}

func NewPublisher(client redis.Cmdable, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := Channel(msg.ResumeID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// Notify 实现 editor.Notifier，发布失败只记录日志。
func (p *Publisher) Notify(resumeID string, notice editor.Notice) {
	kind := KindNotice
	if notice.Code == errcode.ResumeLocked {
		kind = KindLocked
	}
	msg := Message{
		Kind:         kind,
		ResumeID:     resumeID,
		ErrorCode:    notice.Code,
		ErrorMessage: notice.Message,
	}
	if err := p.Publish(context.Background(), msg); err != nil {
		p.logger.Error("publish editor notice failed", slog.String("resume_id", resumeID), slog.Any("error", err))
	}
}

// SyncResultHook 返回 autosave.Options.OnResult 使用的回调。
func (p *Publisher) SyncResultHook() func(resumeID string, err error) {
	return func(resumeID string, err error) {
		if pubErr := p.Publish(context.Background(), SyncResult(resumeID, err)); pubErr != nil {
			p.logger.Error("publish sync result failed", slog.String("resume_id", resumeID), slog.Any("error", pubErr))
		}
	}
}
