package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadProbeConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
target = "10.0.0.5:8080"
timeout = "750ms"
check_web = false
`)

	cfg, err := LoadProbeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Target != "10.0.0.5:8080" {
		t.Fatalf("unexpected target: %q", cfg.Target)
	}
	if cfg.Timeout != 750*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.CheckWeb {
		t.Fatalf("expected check_web disabled")
	}
}

func TestLoadProbeConfigDefaults(t *testing.T) {
	path := writeConfig(t, ``)

	cfg, err := LoadProbeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Target != "127.0.0.1:8080" {
		t.Fatalf("unexpected default target: %q", cfg.Target)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.Timeout)
	}
	if !cfg.CheckWeb {
		t.Fatalf("expected check_web enabled by default")
	}
}

func TestLoadProbeConfigBadTimeout(t *testing.T) {
	path := writeConfig(t, `
timeout = "whenever"
`)

	if _, err := LoadProbeConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateProbeConfig(t *testing.T) {
	cfg := DefaultProbeConfig()
	cfg.Target = "   "
	if err := ValidateProbeConfig(cfg); !errors.Is(err, ErrInvalidProbeConfig) {
		t.Fatalf("expected ErrInvalidProbeConfig, got %v", err)
	}

	cfg = DefaultProbeConfig()
	cfg.Timeout = 0
	if err := ValidateProbeConfig(cfg); !errors.Is(err, ErrInvalidProbeConfig) {
		t.Fatalf("expected ErrInvalidProbeConfig, got %v", err)
	}
}

func TestLoadProbeConfigMissingFile(t *testing.T) {
	if _, err := LoadProbeConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected load error")
	}
}
