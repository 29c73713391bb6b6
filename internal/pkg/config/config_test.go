package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.App.Name != "placementos" {
		t.Errorf("app name = %q, want placementos", cfg.App.Name)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:0" {
		t.Errorf("listen addr = %q, want 127.0.0.1:0", cfg.Server.ListenAddr)
	}
	if cfg.Server.UserID != "" {
		t.Errorf("user ID = %q, want empty before first run", cfg.Server.UserID)
	}
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")

	cfg := Default()
	cfg.App.LogLevel = "debug"
	cfg.Server.UserID = "abc-123"
	cfg.Server.ListenAddr = "127.0.0.1:9999"

	if err := WriteFile(path, cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.App.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", got.App.LogLevel)
	}
	if got.Server.UserID != "abc-123" {
		t.Errorf("user ID = %q, want abc-123", got.Server.UserID)
	}
	if got.Server.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("listen addr = %q, want 127.0.0.1:9999", got.Server.ListenAddr)
	}
}
