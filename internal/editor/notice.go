package editor

import (
	"log/slog"

	"resumeEditor/internal/errcode"
)

// Notice 是推送给编辑界面的提示（例如锁定文档的 toast）。
type Notice struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Notifier 接收编辑过程中产生的提示。
type Notifier interface {
	Notify(resumeID string, notice Notice)
}

// NotifierFunc 允许普通函数作为 Notifier。
type NotifierFunc func(resumeID string, notice Notice)

func (f NotifierFunc) Notify(resumeID string, notice Notice) { f(resumeID, notice) }

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(resumeID string, notice Notice) {
	n.logger.Warn("editor notice",
		slog.String("resume_id", resumeID),
		slog.String("kind", notice.Kind),
		slog.Int("code", notice.Code),
		slog.String("message", notice.Message),
	)
}

func lockedNotice() Notice {
	return Notice{
		Code:    errcode.ResumeLocked,
		Kind:    "locked",
		Message: "This resume is locked. Unlock it to make changes.",
	}
}
