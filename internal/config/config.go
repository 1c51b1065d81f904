package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidProbeConfig = errors.New("config: invalid probe config")

type probeFile struct {
	Target   string `toml:"target"`
	Timeout  string `toml:"timeout"`
	CheckWeb *bool  `toml:"check_web"`
}

// ProbeConfig configures the relaycheck sequence probe.
type ProbeConfig struct {
	// Target is the controller device socket address.
	Target string
	// Timeout bounds each request round trip.
	Timeout time.Duration
	// CheckWeb also fetches the static index page.
	CheckWeb bool
}

func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Target:   "127.0.0.1:8080",
		Timeout:  5 * time.Second,
		CheckWeb: true,
	}
}

func LoadProbeConfig(path string) (ProbeConfig, error) {
	cfg := DefaultProbeConfig()

	var raw probeFile
	if err := loadToml(path, &raw); err != nil {
		return ProbeConfig{}, err
	}
	if v := strings.TrimSpace(raw.Target); v != "" {
		cfg.Target = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ProbeConfig{}, fmt.Errorf("config parse timeout (%s): %w", path, err)
		}
		cfg.Timeout = d
	}
	if raw.CheckWeb != nil {
		cfg.CheckWeb = *raw.CheckWeb
	}

	if err := ValidateProbeConfig(cfg); err != nil {
		return ProbeConfig{}, err
	}
	return cfg, nil
}

func ValidateProbeConfig(cfg ProbeConfig) error {
	if strings.TrimSpace(cfg.Target) == "" {
		return fmt.Errorf("%w: missing target", ErrInvalidProbeConfig)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidProbeConfig)
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
