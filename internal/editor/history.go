package editor

import (
	"sync"

	"resumeEditor/internal/resume"
)

// DefaultHistoryLimit 为撤销栈的默认深度。
const DefaultHistoryLimit = 100

// History 保存有界的撤销/重做快照。present 为最近一次记录的快照，
// 与其深度相等的提交会被折叠，不产生新的历史记录。
type History struct {
	mu      sync.Mutex
	limit   int
	past    []*resume.Data
	present *resume.Data
	future  []*resume.Data
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Reset 清空两个栈，并以 initial 作为当前快照。
func (h *History) Reset(initial *resume.Data) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = nil
	h.future = nil
	h.present = initial.Clone()
}

// Record 记录一次提交后的快照，返回是否产生了新的历史记录。
func (h *History) Record(snapshot *resume.Data) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.present != nil && resume.Equal(h.present, snapshot) {
		return false
	}
	if h.present != nil {
		h.past = append(h.past, h.present)
		if over := len(h.past) - h.limit; over > 0 {
			h.past = append([]*resume.Data(nil), h.past[over:]...)
		}
	}
	h.present = snapshot.Clone()
	h.future = nil
	return true
}

// Undo 将当前快照移入重做栈，并返回上一个快照。
func (h *History) Undo() (*resume.Data, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return nil, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	if h.present != nil {
		h.future = append(h.future, h.present)
	}
	h.present = prev
	return prev.Clone(), true
}

// Redo 是 Undo 的逆操作。
func (h *History) Redo() (*resume.Data, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	if h.present != nil {
		h.past = append(h.past, h.present)
	}
	h.present = next
	return next.Clone(), true
}

func (h *History) PastLen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

func (h *History) FutureLen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}
