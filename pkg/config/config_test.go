package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.IconBaseURL != defaultIconBaseURL {
		t.Errorf("IconBaseURL = %q", cfg.IconBaseURL)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend = %q", cfg.CacheBackend)
	}
	if cfg.IconDir != filepath.Join(cfg.CacheDir, "icons") {
		t.Errorf("IconDir = %q should nest under CacheDir %q", cfg.IconDir, cfg.CacheDir)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_base_url = "192.168.1.10:5000"
cache_backend = "memory"
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIBaseURL != "192.168.1.10:5000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("CacheBackend = %q", cfg.CacheBackend)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.IconBaseURL != defaultIconBaseURL {
		t.Errorf("IconBaseURL = %q", cfg.IconBaseURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_base_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = "file.example"`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AOLACHART_API_URL", "env.example")
	t.Setenv("AOLACHART_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIBaseURL != "env.example" {
		t.Errorf("environment should override the file, got %q", cfg.APIBaseURL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}
