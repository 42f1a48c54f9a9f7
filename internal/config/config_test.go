package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHome_EnvOverride(t *testing.T) {
	t.Setenv("VESSELX_HOME", "/data/vessels")
	if got := Home(); got != "/data/vessels" {
		t.Errorf("expected /data/vessels, got %s", got)
	}
	if got := Path(); got != filepath.Join("/data/vessels", DefaultConfigName) {
		t.Errorf("unexpected config path %s", got)
	}

	t.Setenv("VESSELX_CONFIG", "/etc/vesselx.yaml")
	if got := Path(); got != "/etc/vesselx.yaml" {
		t.Errorf("expected /etc/vesselx.yaml, got %s", got)
	}
}

func TestHome_Default(t *testing.T) {
	t.Setenv("VESSELX_HOME", "")
	if got := Home(); got != DefaultHome {
		t.Errorf("expected %s, got %s", DefaultHome, got)
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Extractor.Strategy != "all-in-one" {
		t.Errorf("expected default strategy, got %s", cfg.Extractor.Strategy)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Log.Level)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
extractor:
  command: /opt/vmtk/extract.sh
  args: ["--gpu"]
  timeout: 90s
  strategy: branch
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Extractor.Command != "/opt/vmtk/extract.sh" {
		t.Errorf("unexpected command %s", cfg.Extractor.Command)
	}
	if len(cfg.Extractor.Args) != 1 || cfg.Extractor.Args[0] != "--gpu" {
		t.Errorf("unexpected args %v", cfg.Extractor.Args)
	}
	if cfg.Extractor.Timeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %s", cfg.Extractor.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
	// Unset keys keep their defaults
	if cfg.Log.Format != "console" {
		t.Errorf("expected console format to survive, got %s", cfg.Log.Format)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Extractor.Strategy = "parent-child"
	cfg.Extractor.Timeout = 3 * time.Minute

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Extractor.Strategy != "parent-child" || loaded.Extractor.Timeout != 3*time.Minute {
		t.Errorf("round trip lost values: %+v", loaded.Extractor)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("unexpected expansion %s", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed to %s", got)
	}
}
