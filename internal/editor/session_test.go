package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"resumeEditor/internal/resume"
)

type recordingSyncer struct {
	mu        sync.Mutex
	scheduled []*resume.Data
	flushed   int
	cancelled int
}

func (r *recordingSyncer) Schedule(_ string, data *resume.Data) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, data)
}

func (r *recordingSyncer) Flush(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushed++
	return nil
}

func (r *recordingSyncer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *recordingSyncer) last() *resume.Data {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scheduled[len(r.scheduled)-1]
}

func setName(name string) Mutator {
	return func(d *resume.Data) error {
		d.Basics.Name = name
		return nil
	}
}

func TestSessionUndoRestoresPriorState(t *testing.T) {
	syncer := &recordingSyncer{}
	s := NewSession(SessionOptions{Syncer: syncer})
	s.Open(newTestResume())

	before := s.Current()
	if err := s.Update(setName("Jane Doe")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !resume.Equal(s.Current(), before) {
		t.Fatalf("undo did not restore prior state")
	}
	if got := syncer.last().Basics.Name; got != "John Doe" {
		t.Fatalf("restored state not pushed to remote, last push %q", got)
	}
	if st := s.History(); st.Past != 0 || st.Future != 1 {
		t.Fatalf("unexpected history state %+v", st)
	}

	if err := s.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if got := s.Current().Basics.Name; got != "Jane Doe" {
		t.Fatalf("redo did not reapply change, got %q", got)
	}
}

func TestSessionNoOpCommitKeepsHistoryLength(t *testing.T) {
	s := NewSession(SessionOptions{})
	s.Open(newTestResume())

	if err := s.Update(setName("John Doe")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if st := s.History(); st.Past != 0 {
		t.Fatalf("no-op commit recorded history: %+v", st)
	}
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestSessionOpenClearsHistory(t *testing.T) {
	syncer := &recordingSyncer{}
	s := NewSession(SessionOptions{Syncer: syncer})
	s.Open(newTestResume())
	_ = s.Update(setName("Jane Doe"))

	other := newTestResume()
	other.ID = "resume-2"
	s.Open(other)

	if st := s.History(); st.Past != 0 || st.Future != 0 {
		t.Fatalf("history survived document switch: %+v", st)
	}
	if syncer.cancelled != 2 {
		t.Fatalf("expected pending sync to be cancelled on each open, got %d", syncer.cancelled)
	}
	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("cross-document undo should not be possible, got %v", err)
	}
}

func TestSessionUndoRejectedWhenLocked(t *testing.T) {
	s := NewSession(SessionOptions{})
	s.Open(newTestResume())
	_ = s.Update(setName("Jane Doe"))
	_ = s.SetLocked(true)

	if err := s.Undo(); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if st := s.History(); st.Past != 1 {
		t.Fatalf("locked undo touched history: %+v", st)
	}
}

func TestSessionCloseFlushesAndResets(t *testing.T) {
	syncer := &recordingSyncer{}
	s := NewSession(SessionOptions{Syncer: syncer})
	s.Open(newTestResume())

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if syncer.flushed != 1 {
		t.Fatalf("expected one flush, got %d", syncer.flushed)
	}
	if s.Current() != nil {
		t.Fatalf("document should be discarded on close")
	}
}

type mapLoader map[string]*resume.Resume

func (m mapLoader) LoadResume(_ context.Context, id string) (*resume.Resume, error) {
	r, ok := m[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func TestManagerReusesSessions(t *testing.T) {
	m := NewManager(mapLoader{"resume-1": newTestResume()}, nil, nil, 0, nil)
	ctx := context.Background()

	a, err := m.Open(ctx, "resume-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, err := m.Open(ctx, "resume-1")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same session")
	}
	if _, err := m.Open(ctx, "missing"); err == nil {
		t.Fatalf("expected load error")
	}
	if err := m.Close(ctx, "resume-1"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := m.Get("resume-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
