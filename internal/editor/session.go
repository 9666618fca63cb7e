package editor

import (
	"context"
	"log/slog"

	"resumeEditor/internal/metrics"
	"resumeEditor/internal/resume"
)

// Syncer 将提交后的文档推送到远端。
type Syncer interface {
	Schedule(resumeID string, data *resume.Data)
	Flush(ctx context.Context) error
	Cancel()
}

type noopSyncer struct{}

func (noopSyncer) Schedule(string, *resume.Data) {}
func (noopSyncer) Flush(context.Context) error   { return nil }
func (noopSyncer) Cancel()                       {}

// SessionOptions 配置一个编辑会话。
type SessionOptions struct {
	HistoryLimit int
	Syncer       Syncer
	Notifier     Notifier
	Logger       *slog.Logger
}

// Session 组合 Store、History 与 Syncer：
// 每次成功提交都会记录历史（编辑来源）并调度一次远端写入（所有来源）。
type Session struct {
	store   *Store
	history *History
	syncer  Syncer
	logger  *slog.Logger
}

// NewSession 构造编辑会话。
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	syncer := opts.Syncer
	if syncer == nil {
		syncer = noopSyncer{}
	}

	s := &Session{
		store:   NewStore(opts.Notifier, logger),
		history: NewHistory(opts.HistoryLimit),
		syncer:  syncer,
		logger:  logger,
	}
	s.store.Observe(ObserverFunc(func(_ string, data *resume.Data, origin Origin) {
		if origin != OriginEdit {
			return
		}
		if !s.history.Record(data) {
			metrics.HistoryCollapsed()
		}
	}))
	s.store.Observe(ObserverFunc(func(resumeID string, data *resume.Data, _ Origin) {
		s.syncer.Schedule(resumeID, data)
	}))
	return s
}

// Open 载入文档，并清空撤销历史与尚未发出的远端写入。
func (s *Session) Open(r *resume.Resume) {
	s.syncer.Cancel()
	s.store.Initialize(r)
	if r == nil {
		s.history.Reset(nil)
		return
	}
	s.history.Reset(s.store.Current())
}

// Close 立即写出待同步的文档，然后清空会话。
func (s *Session) Close(ctx context.Context) error {
	err := s.syncer.Flush(ctx)
	s.Open(nil)
	return err
}

// Update 是所有修改来源共用的入口。
func (s *Session) Update(fn Mutator) error {
	return s.store.Update(fn)
}

// Undo 恢复上一次记录的快照，恢复后的文档同样会推送到远端。
func (s *Session) Undo() error {
	err := s.store.commit(OriginUndo, func(draft *resume.Data) error {
		prev, ok := s.history.Undo()
		if !ok {
			return ErrNothingToUndo
		}
		*draft = *prev
		return nil
	})
	if err == nil {
		metrics.HistoryStep(string(OriginUndo))
	}
	return err
}

// Redo 重新应用最近一次撤销的快照。
func (s *Session) Redo() error {
	err := s.store.commit(OriginRedo, func(draft *resume.Data) error {
		next, ok := s.history.Redo()
		if !ok {
			return ErrNothingToRedo
		}
		*draft = *next
		return nil
	})
	if err == nil {
		metrics.HistoryStep(string(OriginRedo))
	}
	return err
}

// HistoryState 描述工具栏需要的撤销/重做状态。
type HistoryState struct {
	Past   int `json:"past"`
	Future int `json:"future"`
}

func (s *Session) History() HistoryState {
	return HistoryState{Past: s.history.PastLen(), Future: s.history.FutureLen()}
}

// SetLocked 切换文档的锁定状态。
func (s *Session) SetLocked(locked bool) error {
	return s.store.SetLocked(locked)
}

func (s *Session) Current() *resume.Data { return s.store.Current() }

func (s *Session) Resume() *resume.Resume { return s.store.Resume() }

func (s *Session) ID() string { return s.store.ID() }

// Syncer 返回会话使用的同步器，供调用方查询同步状态。
func (s *Session) Syncer() Syncer { return s.syncer }
