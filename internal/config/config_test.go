package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor.Debounce() != 500*time.Millisecond {
		t.Fatalf("unexpected debounce %s", cfg.Editor.Debounce())
	}
	if cfg.Editor.HistoryLimit != 100 {
		t.Fatalf("unexpected history limit %d", cfg.Editor.HistoryLimit)
	}
	if cfg.Editor.PatchCallTTL != 24*time.Hour {
		t.Fatalf("unexpected patch call ttl %s", cfg.Editor.PatchCallTTL)
	}
	if cfg.Editor.Persistence != PersistenceDirect {
		t.Fatalf("unexpected persistence mode %q", cfg.Editor.Persistence)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("EDITOR_DEBOUNCE_MS", "250")
	t.Setenv("EDITOR_PATCH_CALL_TTL", "1h")
	t.Setenv("PERSISTENCE_MODE", "queue")
	t.Setenv("WS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9090 || cfg.Editor.DebounceMS != 250 || cfg.Editor.PatchCallTTL != time.Hour {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Editor.Persistence != PersistenceQueue {
		t.Fatalf("unexpected persistence mode %q", cfg.Editor.Persistence)
	}
	if origins := cfg.API.Origins(); len(origins) != 2 || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", origins)
	}
	if cfg.Redis.Addr() != "localhost:6380" {
		t.Fatalf("unexpected redis addr %s", cfg.Redis.Addr())
	}
}

func TestLoadRejectsUnknownPersistence(t *testing.T) {
	t.Setenv("PERSISTENCE_MODE", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown persistence mode")
	}
}
