package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Load() server.host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Load() server.port = %d", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Load() server.timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Content.SharedDir != "SharedContent" {
		t.Errorf("Load() content.shared_dir = %q", cfg.Content.SharedDir)
	}
	if cfg.Content.CustomersDir != "Customers" {
		t.Errorf("Load() content.customers_dir = %q", cfg.Content.CustomersDir)
	}
	if cfg.Content.OutputDir != "out" {
		t.Errorf("Load() content.output_dir = %q", cfg.Content.OutputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  port: 9090
  log_level: debug
content:
  shared_dir: /srv/content/shared
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Debug {
		t.Error("Load() debug = false, want true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Load() server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("Load() server.log_level = %q", cfg.Server.LogLevel)
	}
	if cfg.Content.SharedDir != "/srv/content/shared" {
		t.Errorf("Load() content.shared_dir = %q", cfg.Content.SharedDir)
	}
	// Unset keys keep their defaults.
	if cfg.Content.CustomersDir != "Customers" {
		t.Errorf("Load() content.customers_dir = %q", cfg.Content.CustomersDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 7070\n")
	t.Setenv(SentinelForgeConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Load() server.port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoadEnvPathMissingFile(t *testing.T) {
	t.Setenv(SentinelForgeConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(""); err == nil {
		t.Fatal("Load() with missing env-specified file should fail")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SENTINEL_FORGE_SERVER_PORT", "6060")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Load() server.port = %d, want 6060 from env", cfg.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with invalid YAML should fail")
	}
}
