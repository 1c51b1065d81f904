package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
listen_addr = ":9080"
ops_addr = "127.0.0.1:9091"
tick = "2ms"
heartbeat = "1m"
`)

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":9080" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.OpsListenAddr != "127.0.0.1:9091" {
		t.Fatalf("unexpected ops addr: %q", cfg.OpsListenAddr)
	}
	if cfg.TickInterval != 2*time.Millisecond {
		t.Fatalf("unexpected tick: %v", cfg.TickInterval)
	}
	if cfg.HeartbeatInterval != time.Minute {
		t.Fatalf("unexpected heartbeat: %v", cfg.HeartbeatInterval)
	}
}

func TestLoadServiceConfigDefaultsWhenAbsent(t *testing.T) {
	path := writeConfig(t, `
listen_addr = ":9080"
`)

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TickInterval != time.Millisecond {
		t.Fatalf("unexpected tick: %v", cfg.TickInterval)
	}
	if cfg.HeartbeatInterval != 30*time.Second {
		t.Fatalf("unexpected heartbeat: %v", cfg.HeartbeatInterval)
	}
	if cfg.OpsListenAddr != "" {
		t.Fatalf("unexpected ops addr: %q", cfg.OpsListenAddr)
	}
}

func TestLoadServiceConfigTickMillis(t *testing.T) {
	path := writeConfig(t, `
tick_ms = 5
`)

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TickInterval != 5*time.Millisecond {
		t.Fatalf("unexpected tick: %v", cfg.TickInterval)
	}
}

func TestLoadServiceConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `
tick = "soon"
`)

	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
