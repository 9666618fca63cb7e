package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 远端写入方式。
const (
	PersistenceDirect = "direct"
	PersistenceQueue  = "queue"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Editor   EditorConfig   `mapstructure:"editor"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
	// AllowedOrigins 为 WebSocket 允许的来源，逗号分隔；为空时只允许同源。
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins 返回拆分后的来源列表。
func (a APIConfig) Origins() []string {
	var out []string
	for _, origin := range strings.Split(a.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr 返回 host:port 形式的地址。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// EditorConfig 控制编辑会话的行为。
type EditorConfig struct {
	DebounceMS   int           `mapstructure:"debounce_ms"`
	HistoryLimit int           `mapstructure:"history_limit"`
	PatchCallTTL time.Duration `mapstructure:"patch_call_ttl"`
	// Persistence 为 direct（直接写库）或 queue（经 asynq 由 worker 写库）。
	Persistence string `mapstructure:"persistence"`
}

// Debounce 返回防抖窗口。
func (e EditorConfig) Debounce() time.Duration {
	return time.Duration(e.DebounceMS) * time.Millisecond
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.allowed_origins", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resume_editor")
	v.SetDefault("database.user", "resume_editor")
	v.SetDefault("database.password", "resume_editor")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("editor.debounce_ms", 500)
	v.SetDefault("editor.history_limit", 100)
	v.SetDefault("editor.patch_call_ttl", 24*time.Hour)
	v.SetDefault("editor.persistence", PersistenceDirect)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":              "API_PORT",
		"api.allowed_origins":   "WS_ALLOWED_ORIGINS",
		"database.host":         "DATABASE_HOST",
		"database.port":         "DATABASE_PORT",
		"database.name":         "POSTGRES_DB",
		"database.user":         "POSTGRES_USER",
		"database.password":     "POSTGRES_PASSWORD",
		"database.sslmode":      "DATABASE_SSLMODE",
		"redis.host":            "REDIS_HOST",
		"redis.port":            "REDIS_PORT",
		"editor.debounce_ms":    "EDITOR_DEBOUNCE_MS",
		"editor.history_limit":  "EDITOR_HISTORY_LIMIT",
		"editor.patch_call_ttl": "EDITOR_PATCH_CALL_TTL",
		"editor.persistence":    "PERSISTENCE_MODE",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.Editor.DebounceMS <= 0 {
		return errors.New("editor debounce must be positive")
	}
	if cfg.Editor.HistoryLimit <= 0 {
		return errors.New("editor history limit must be positive")
	}
	if cfg.Editor.PatchCallTTL <= 0 {
		return errors.New("editor patch call ttl must be positive")
	}
	switch cfg.Editor.Persistence {
	case PersistenceDirect, PersistenceQueue:
	default:
		return fmt.Errorf("unknown persistence mode %q", cfg.Editor.Persistence)
	}
	return nil
}
