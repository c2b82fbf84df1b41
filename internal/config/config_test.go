package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("storage driver = %q", cfg.Storage.Driver)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("token ttl = %v", cfg.Auth.TokenTTL)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default on")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SUPPLYCORE_HTTP_ADDR", ":9090")
	t.Setenv("SUPPLYCORE_STORAGE_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("storage driver = %q", cfg.Storage.Driver)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "supplycore.yaml")
	body := "http:\n  addr: \":7070\"\nauth:\n  jwt_secret: file-secret\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
	// Untouched keys keep their defaults.
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("storage driver = %q", cfg.Storage.Driver)
	}
}
