package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"resumeEditor/internal/resume"
)

// Loader 从持久层读取简历。
type Loader interface {
	LoadResume(ctx context.Context, id string) (*resume.Resume, error)
}

// SyncerFactory 为每个会话创建独立的同步器，保证同步状态只属于一个文档。
type SyncerFactory func(resumeID string) Syncer

// Manager 按简历 ID 管理编辑会话。
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	loader       Loader
	newSyncer    SyncerFactory
	notifier     Notifier
	historyLimit int
	logger       *slog.Logger
}

// NewManager 构造会话管理器。
func NewManager(loader Loader, newSyncer SyncerFactory, notifier Notifier, historyLimit int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		loader:       loader,
		newSyncer:    newSyncer,
		notifier:     notifier,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Open 返回已存在的会话，或从持久层载入文档创建新会话。
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	r, err := m.loader.LoadResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load resume %s: %w", id, err)
	}

	var syncer Syncer
	if m.newSyncer != nil {
		syncer = m.newSyncer(id)
	}
	s := NewSession(SessionOptions{
		HistoryLimit: m.historyLimit,
		Syncer:       syncer,
		Notifier:     m.notifier,
		Logger:       m.logger.With(slog.String("resume_id", id)),
	})
	s.Open(r)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}
	m.sessions[id] = s
	m.logger.Info("editor session opened", slog.String("resume_id", id))
	return s, nil
}

// Get 返回已打开的会话。
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close 写出待同步的修改并丢弃会话。
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	m.logger.Info("editor session closed", slog.String("resume_id", id))
	return s.Close(ctx)
}

// CloseAll 在服务退出前关闭全部会话。
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
