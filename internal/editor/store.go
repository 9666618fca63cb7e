package editor

import (
	"log/slog"
	"sync"

	"resumeEditor/internal/metrics"
	"resumeEditor/internal/resume"
)

// Origin 标识一次提交的来源。
type Origin string

const (
	OriginEdit Origin = "edit"
	OriginUndo Origin = "undo"
	OriginRedo Origin = "redo"
)

// Mutator 在工作副本上修改文档；返回错误时本次修改整体丢弃。
// Mutator 在 Store 的锁内执行，不能再回调同一个 Store。
type Mutator = func(draft *resume.Data) error

// Observer 在每次成功提交后被调用，data 为只读快照。
type Observer interface {
	Committed(resumeID string, data *resume.Data, origin Origin)
}

// ObserverFunc 允许普通函数作为 Observer。
type ObserverFunc func(resumeID string, data *resume.Data, origin Origin)

func (f ObserverFunc) Committed(resumeID string, data *resume.Data, origin Origin) {
	f(resumeID, data, origin)
}

// Store 持有当前文档与锁定标记，是唯一的修改入口。
type Store struct {
	mu        sync.Mutex
	id        string
	title     string
	locked    bool
	doc       *resume.Data
	observers []Observer
	notifier  Notifier
}

// NewStore 构造空的 Store；notifier 为 nil 时锁定提示写入日志。
func NewStore(notifier Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = logNotifier{logger: logger}
	}
	return &Store{notifier: notifier}
}

// Observe 注册提交观察者，按注册顺序调用。
func (s *Store) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Initialize 替换当前文档；传入 nil 时清空。
func (s *Store) Initialize(r *resume.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r == nil || r.Data == nil {
		s.id, s.title, s.locked, s.doc = "", "", false, nil
		return
	}
	s.id = r.ID
	s.title = r.Title
	s.locked = r.Locked
	s.doc = r.Data.Clone()
	s.doc.Normalize()
}

// Update 在当前文档的工作副本上运行 fn，成功返回后原子提交。
func (s *Store) Update(fn Mutator) error {
	return s.commit(OriginEdit, fn)
}

func (s *Store) commit(origin Origin, fn Mutator) error {
	s.mu.Lock()
	if s.locked && s.doc != nil {
		id := s.id
		s.mu.Unlock()
		// 通知可能涉及网络 I/O，不在持锁期间发送。
		metrics.LockedRejection()
		s.notifier.Notify(id, lockedNotice())
		return ErrLocked
	}
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNoDocument
	}

	draft := s.doc.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	draft.Normalize()
	s.doc = draft
	metrics.ObserveMutation(string(origin))

	for _, o := range s.observers {
		o.Committed(s.id, draft.Clone(), origin)
	}
	return nil
}

// Current 返回当前文档的副本；未加载时返回 nil。
func (s *Store) Current() *resume.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Resume 返回当前简历记录的副本。
func (s *Store) Resume() *resume.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	return &resume.Resume{ID: s.id, Title: s.title, Locked: s.locked, Data: s.doc.Clone()}
}

func (s *Store) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Store) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// SetLocked 修改锁定标记。锁定标记本身不受锁定限制，也不产生历史记录。
func (s *Store) SetLocked(locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNoDocument
	}
	s.locked = locked
	return nil
}
