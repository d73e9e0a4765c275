package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("expected in-memory db, got %q", cfg.DBPath)
	}
	if cfg.Latency != 500*time.Millisecond {
		t.Errorf("expected 500ms latency, got %v", cfg.Latency)
	}
	if !cfg.Seed {
		t.Error("expected seeding to be enabled by default")
	}
	if cfg.AdminEmail != "admin@eventos.com" || cfg.AdminPassword != "123456" {
		t.Errorf("unexpected admin credentials %q/%q", cfg.AdminEmail, cfg.AdminPassword)
	}
	if cfg.BaseURL != "" {
		t.Errorf("expected base URL to be detected at startup, got %q", cfg.BaseURL)
	}
	if cfg.SessionIdle != 30*time.Minute || cfg.StatsInterval != 30*time.Second {
		t.Errorf("unexpected session idle %v / stats interval %v", cfg.SessionIdle, cfg.StatsInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate_EmptyPasswordAllowed(t *testing.T) {
	cfg := &Config{Port: 8081, AdminEmail: "a@b.c", SessionIdle: time.Minute, StatsInterval: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Errorf("empty password is generated at startup, got %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("EVENTDASH_PORT", "9090")
	t.Setenv("EVENTDASH_LATENCY", "0s")
	t.Setenv("EVENTDASH_SEED", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.Latency != 0 {
		t.Errorf("expected no latency, got %v", cfg.Latency)
	}
	if cfg.Seed {
		t.Error("expected seeding to be disabled")
	}
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "EVENTDASH_LOG_LEVEL=debug\nEVENTDASH_NODE_ID=7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("EVENTDASH_LOG_LEVEL")
		os.Unsetenv("EVENTDASH_NODE_ID")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.NodeID != 7 {
		t.Errorf("expected node id 7, got %d", cfg.NodeID)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("EVENTDASH_PORT", "not-a-number")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for a non-numeric port")
	}
}

func TestRegisterFlags_OverrideEnvironment(t *testing.T) {
	t.Setenv("EVENTDASH_PORT", "9090")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	fs := flag.NewFlagSet("eventdash", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-port", "7000", "-latency", "25ms", "-version"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Port != 7000 {
		t.Errorf("expected flag to win, got port %d", cfg.Port)
	}
	if cfg.Latency != 25*time.Millisecond {
		t.Errorf("expected 25ms latency, got %v", cfg.Latency)
	}
	if !cfg.ShowVersion {
		t.Error("expected -version to be set")
	}
	if cfg.Addr() != ":7000" {
		t.Errorf("expected :7000, got %q", cfg.Addr())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"negative latency", func(c *Config) { c.Latency = -time.Second }},
		{"node id too high", func(c *Config) { c.NodeID = 2048 }},
		{"missing admin email", func(c *Config) { c.AdminEmail = "" }},
		{"zero session idle", func(c *Config) { c.SessionIdle = 0 }},
		{"zero stats interval", func(c *Config) { c.StatsInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Port: 8081, NodeID: 1, AdminEmail: "a@b.c", SessionIdle: time.Minute, StatsInterval: time.Second}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
