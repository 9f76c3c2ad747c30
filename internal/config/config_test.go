package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values and defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: /tmp/test.db
auth:
  jwtsecret: test-secret
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("Port = %d, want 9090", cfg.Server.Port)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Path = %q", cfg.Database.Path)
		}
		if cfg.Auth.TokenTTL != 24*time.Hour {
			t.Errorf("TokenTTL = %v, want 24h default", cfg.Auth.TokenTTL)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Level = %q, want info default", cfg.Log.Level)
		}
	})

	t.Run("postgres driver requires dsn", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: postgres
auth:
  jwtsecret: test-secret
`)
		if _, err := Load(path); err == nil {
			t.Error("expected error for missing dsn")
		}
	})

	t.Run("missing jwt secret is rejected", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/test.db
`)
		if _, err := Load(path); err == nil {
			t.Error("expected error for missing secret")
		}
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: oracle
auth:
  jwtsecret: test-secret
`)
		if _, err := Load(path); err == nil {
			t.Error("expected error for unknown driver")
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("QARZDAFTAR_SERVER_PORT", "7070")
		path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  path: /tmp/test.db
auth:
  jwtsecret: test-secret
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Port != 7070 {
			t.Errorf("Port = %d, want env override 7070", cfg.Server.Port)
		}
	})
}
