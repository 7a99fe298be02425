package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	for _, want := range []string{"[storage]", "[alerts]", "feed_size = 50"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in written config:\n%s", want, data)
		}
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate failed: %v", err)
	}
	if again != cfg {
		t.Errorf("expected reload to match, got %+v want %+v", again, cfg)
	}
}

func TestLoadOrCreate_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := "locale = 'es'\n\n[storage]\nbackend = 'file'\npath = '/tmp/tasks.yaml'\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Storage.Backend != BackendFile || cfg.Storage.Path != "/tmp/tasks.yaml" {
		t.Errorf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Storage.Key != DefaultStorageKey {
		t.Errorf("expected default key, got %q", cfg.Storage.Key)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Log.Level != "info" {
		t.Errorf("expected defaults for unset sections, got %+v %+v", cfg.Server, cfg.Log)
	}
	if cfg.Locale != "es" {
		t.Errorf("expected locale es, got %q", cfg.Locale)
	}
}

func TestLoadOrCreate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[storage\n", "failed to parse"},
		{"bad backend", "[storage]\nbackend = 'redis'\n", "storage.backend"},
		{"bad level", "[log]\nlevel = 'loud'\n", "log.level"},
		{"bad format", "[log]\nformat = 'xml'\n", "log.format"},
		{"bad locale", "locale = 'not a locale!'\n", "invalid locale"},
		{"negative feed", "[alerts]\nfeed_size = -1\n", "alerts.feed_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadOrCreate(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyOverrides_Env(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "memory")
	t.Setenv("TASKBOARD_LOG_LEVEL", "DEBUG")
	t.Setenv("TASKBOARD_ALERTS_FEED_SIZE", "5")

	cfg, err := ApplyOverrides(Default(), NewViper())
	if err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
	if cfg.Alerts.FeedSize != 5 {
		t.Errorf("expected feed size 5, got %d", cfg.Alerts.FeedSize)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("expected untouched addr, got %q", cfg.Server.Addr)
	}
}

func TestApplyOverrides_ExplicitBeatsEnv(t *testing.T) {
	t.Setenv("TASKBOARD_SERVER_ADDR", ":9000")

	v := NewViper()
	v.Set("server.addr", "127.0.0.1:7000")

	cfg, err := ApplyOverrides(Default(), v)
	if err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("expected explicit value to win, got %q", cfg.Server.Addr)
	}
}

func TestApplyOverrides_Validates(t *testing.T) {
	t.Setenv("TASKBOARD_STORAGE_BACKEND", "postgres")

	if _, err := ApplyOverrides(Default(), NewViper()); err == nil {
		t.Error("expected invalid backend to be rejected")
	}
}

func TestResolveConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "taskboard", DefaultConfigFileName)
	if got := ResolveConfigPath(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
