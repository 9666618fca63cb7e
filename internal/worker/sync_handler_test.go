package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"

	"resumeEditor/internal/database"
	"resumeEditor/internal/errcode"
	"resumeEditor/internal/notify"
	"resumeEditor/internal/resume"
	"resumeEditor/internal/tasks"
)

type fakeWriter struct {
	writes map[string]*resume.Data
	err    error
}

func (f *fakeWriter) UpdateResume(_ context.Context, id string, data *resume.Data) error {
	if f.err != nil {
		return f.err
	}
	if f.writes == nil {
		f.writes = map[string]*resume.Data{}
	}
	f.writes[id] = data
	return nil
}

type fakePublisher struct {
	messages []notify.Message
}

func (f *fakePublisher) Publish(_ context.Context, msg notify.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func newSyncTask(t *testing.T, id string, data *resume.Data) *asynq.Task {
	t.Helper()
	task, err := tasks.NewResumeSyncTask(id, data)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func TestSyncTaskWritesAndNotifies(t *testing.T) {
	writer := &fakeWriter{}
	pub := &fakePublisher{}
	h := NewSyncTaskHandler(writer, pub, nil)

	doc := resume.Sample()
	if err := h.ProcessTask(context.Background(), newSyncTask(t, "r1", doc)); err != nil {
		t.Fatalf("process: %v", err)
	}
	if !resume.Equal(writer.writes["r1"], doc) {
		t.Fatalf("written document differs from payload")
	}
	if len(pub.messages) != 1 || pub.messages[0].Status != "saved" {
		t.Fatalf("unexpected notifications %+v", pub.messages)
	}
}

func TestSyncTaskFailurePublishesError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("db down")}
	pub := &fakePublisher{}
	h := NewSyncTaskHandler(writer, pub, nil)

	err := h.ProcessTask(context.Background(), newSyncTask(t, "r1", resume.Default()))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(pub.messages) != 1 || pub.messages[0].ErrorCode != errcode.SyncFailed {
		t.Fatalf("unexpected notifications %+v", pub.messages)
	}
}

func TestSyncTaskMissingResumeIsDropped(t *testing.T) {
	writer := &fakeWriter{err: database.ErrResumeNotFound}
	pub := &fakePublisher{}
	h := NewSyncTaskHandler(writer, pub, nil)

	if err := h.ProcessTask(context.Background(), newSyncTask(t, "gone", resume.Default())); err != nil {
		t.Fatalf("missing resume should not fail the task: %v", err)
	}
	if len(pub.messages) != 1 || pub.messages[0].Status != "error" {
		t.Fatalf("unexpected notifications %+v", pub.messages)
	}
}

func TestSyncTaskRejectsBadPayload(t *testing.T) {
	h := NewSyncTaskHandler(&fakeWriter{}, &fakePublisher{}, nil)
	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeResumeSync, []byte(`{"resume_id":""}`)))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
