package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"resumeEditor/internal/editor"
	"resumeEditor/internal/errcode"
)

func setupPublisher(t *testing.T) (*Publisher, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPublisher(client, nil), client
}

func receive(t *testing.T, sub *redis.PubSub) Message {
	t.Helper()
	select {
	case raw := <-sub.Channel():
		var msg Message
		if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no message received")
	}
	return Message{}
}

func subscribe(t *testing.T, client *redis.Client, resumeID string) *redis.PubSub {
	t.Helper()
	sub := client.Subscribe(context.Background(), Channel(resumeID))
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	t.Cleanup(func() { _ = sub.Close() })
	return sub
}

func TestNotifyLockedNotice(t *testing.T) {
	p, client := setupPublisher(t)
	sub := subscribe(t, client, "r1")

	p.Notify("r1", editor.Notice{Code: errcode.ResumeLocked, Kind: "locked", Message: "locked"})

	msg := receive(t, sub)
	if msg.Kind != KindLocked || msg.ErrorCode != errcode.ResumeLocked || msg.ResumeID != "r1" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestSyncResultHook(t *testing.T) {
	p, client := setupPublisher(t)
	sub := subscribe(t, client, "r2")
	hook := p.SyncResultHook()

	hook("r2", errors.New("boom"))
	failed := receive(t, sub)
	if failed.Status != "error" || failed.ErrorCode != errcode.SyncFailed || failed.ErrorMessage != "boom" {
		t.Fatalf("unexpected failure message %+v", failed)
	}

	hook("r2", nil)
	saved := receive(t, sub)
	if saved.Status != "saved" || saved.ErrorCode != errcode.OK {
		t.Fatalf("unexpected success message %+v", saved)
	}
}
