// Package autosave 将编辑器提交后的文档防抖写入远端。
package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"resumeEditor/internal/metrics"
	"resumeEditor/internal/patch"
	"resumeEditor/internal/resume"
)

// DefaultWindow 为防抖静默窗口。
const DefaultWindow = 500 * time.Millisecond

// Remote 是远端简历更新接口，接收完整文档 {id, data}。
type Remote interface {
	UpdateResume(ctx context.Context, id string, data *resume.Data) error
}

// RemoteFunc 允许普通函数作为 Remote。
type RemoteFunc func(ctx context.Context, id string, data *resume.Data) error

func (f RemoteFunc) UpdateResume(ctx context.Context, id string, data *resume.Data) error {
	return f(ctx, id, data)
}

// Options 配置 Syncer。
type Options struct {
	Window       time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
	// OnResult 在每次远端写入结束后调用，err 为 nil 表示成功。
	OnResult func(resumeID string, err error)
}

// Status 是同步状态快照，供界面展示“未保存”提示。
type Status struct {
	Pending      bool       `json:"pending"`
	Writes       int        `json:"writes"`
	LastError    string     `json:"last_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// Syncer 对写入做防抖：窗口内的新调度取消旧调度，窗口结束后只写出最新文档。
// 失败不会重试，只记录到 Status、日志与指标。
type Syncer struct {
	remote       Remote
	window       time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
	onResult     func(string, error)

	mu         sync.Mutex
	pending    *pendingWrite
	lastSynced *resume.Data
	status     Status

	// writeMu 保证写入按调度顺序逐个完成。
	writeMu sync.Mutex
}

type pendingWrite struct {
	resumeID string
	data     *resume.Data
	timer    *time.Timer
	ctx      context.Context
	cancel   context.CancelFunc
}

// New 构造 Syncer。
func New(remote Remote, opts Options) *Syncer {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Syncer{
		remote:       remote,
		window:       opts.Window,
		writeTimeout: opts.WriteTimeout,
		logger:       opts.Logger,
		onResult:     opts.OnResult,
	}
}

// Schedule 在静默窗口结束后写出 data；尚未发出的旧写入会被取消。
func (s *Syncer) Schedule(resumeID string, data *resume.Data) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &pendingWrite{resumeID: resumeID, data: data, ctx: ctx, cancel: cancel}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.timer.Stop()
		s.pending.cancel()
		metrics.SyncSuperseded()
	}
	w.timer = time.AfterFunc(s.window, func() { s.fire(w) })
	s.pending = w
	s.status.Pending = true
}

func (s *Syncer) fire(w *pendingWrite) {
	s.mu.Lock()
	if s.pending != w || w.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(w.ctx, s.writeTimeout)
	defer cancel()
	defer w.cancel()
	_ = s.write(ctx, w)
}

// Flush 立即写出尚未发出的文档，没有待写入时直接返回。
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	w := s.pending
	if w == nil {
		s.mu.Unlock()
		return nil
	}
	w.timer.Stop()
	s.pending = nil
	s.mu.Unlock()

	defer w.cancel()
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return s.write(ctx, w)
}

// Cancel 丢弃尚未发出的写入。
func (s *Syncer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	s.pending.timer.Stop()
	s.pending.cancel()
	s.pending = nil
	s.status.Pending = false
}

// Status 返回同步状态快照。
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) write(ctx context.Context, w *pendingWrite) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	log := s.logger.With(slog.String("resume_id", w.resumeID))

	s.mu.Lock()
	previous := s.lastSynced
	s.mu.Unlock()
	if previous != nil {
		if ops, err := patch.Diff(previous, w.data); err == nil {
			log.Debug("syncing resume", slog.Int("changed_paths", len(ops)))
		}
	}

	err := s.remote.UpdateResume(ctx, w.resumeID, w.data)

	s.mu.Lock()
	s.status.Pending = s.pending != nil
	if err != nil {
		s.status.LastError = err.Error()
	} else {
		s.status.Writes++
		s.status.LastError = ""
		now := time.Now()
		s.status.LastSyncedAt = &now
		s.lastSynced = w.data
	}
	s.mu.Unlock()

	if err != nil {
		metrics.SyncWrite("error")
		log.Error("sync resume failed", slog.Any("error", err))
		err = fmt.Errorf("sync resume %s: %w", w.resumeID, err)
	} else {
		metrics.SyncWrite("ok")
	}
	if s.onResult != nil {
		s.onResult(w.resumeID, err)
	}
	return err
}
