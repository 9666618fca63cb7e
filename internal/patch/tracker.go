package patch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker 记录已经应用过的工具调用 ID。
type Tracker interface {
	// MarkApplied 记录 callID，若此前已记录则返回 false。
	MarkApplied(ctx context.Context, resumeID, callID string) (bool, error)
	// Forget 删除记录，使失败的调用可以重新应用。
	Forget(ctx context.Context, resumeID, callID string) error
}

// MemoryTracker 是进程内的 Tracker 实现。
type MemoryTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{seen: make(map[string]struct{})}
}

func (m *MemoryTracker) MarkApplied(_ context.Context, resumeID, callID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := trackerKey(resumeID, callID)
	if _, ok := m.seen[key]; ok {
		return false, nil
	}
	m.seen[key] = struct{}{}
	return true, nil
}

func (m *MemoryTracker) Forget(_ context.Context, resumeID, callID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, trackerKey(resumeID, callID))
	return nil
}

// RedisTracker 使用 SETNX 记录调用 ID，多个 API 实例共享同一份记录。
type RedisTracker struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisTracker(client redis.Cmdable, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisTracker{client: client, ttl: ttl}
}

func (r *RedisTracker) MarkApplied(ctx context.Context, resumeID, callID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, trackerKey(resumeID, callID), 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark patch call %s: %w", callID, err)
	}
	return ok, nil
}

func (r *RedisTracker) Forget(ctx context.Context, resumeID, callID string) error {
	if err := r.client.Del(ctx, trackerKey(resumeID, callID)).Err(); err != nil {
		return fmt.Errorf("forget patch call %s: %w", callID, err)
	}
	return nil
}

func trackerKey(resumeID, callID string) string {
	return "patch_call:" + resumeID + ":" + callID
}
