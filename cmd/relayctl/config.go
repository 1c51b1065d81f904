package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/relayctl/internal/engine"
)

type fileConfig struct {
	ListenAddr string `toml:"listen_addr"`
	OpsAddr    string `toml:"ops_addr"`
	Tick       string `toml:"tick"`
	TickMS     int64  `toml:"tick_ms"`
	Heartbeat  string `toml:"heartbeat"`
}

func loadServiceConfig(path string) (engine.ServiceConfig, error) {
	cfg := engine.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return engine.ServiceConfig{}, fmt.Errorf("load relayctl config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		if v := strings.TrimSpace(raw.ListenAddr); v != "" {
			cfg.ListenAddr = v
		}
	}

	if meta.IsDefined("ops_addr") {
		cfg.OpsListenAddr = strings.TrimSpace(raw.OpsAddr)
	}

	if meta.IsDefined("tick") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Tick))
		if err != nil {
			return engine.ServiceConfig{}, fmt.Errorf("parse tick: %w", err)
		}
		cfg.TickInterval = d
	}

	if meta.IsDefined("tick_ms") {
		cfg.TickInterval = time.Duration(raw.TickMS) * time.Millisecond
	}

	if meta.IsDefined("heartbeat") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Heartbeat))
		if err != nil {
			return engine.ServiceConfig{}, fmt.Errorf("parse heartbeat: %w", err)
		}
		cfg.HeartbeatInterval = d
	}

	return cfg, nil
}
