package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROUTEVIZ_URL", "http://env-server:9090")

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL = %q, want env value", flagURL)
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	resetFlags(t)
	t.Setenv("ROUTEVIZ_URL", "http://env-server:9090")

	flagURL = "http://flag:1"
	resolveConfig()

	if flagURL != "http://flag:1" {
		t.Errorf("flagURL = %q, want flag value", flagURL)
	}
}

func TestResolveConfigProfile(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ROUTEVIZ_URL", "")

	dir := filepath.Join(home, ".routeviz")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	cfg := "active_profile: staging\nprofiles:\n  default:\n    url: http://default:1\n  staging:\n    url: http://staging:2\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://staging:2" {
		t.Errorf("flagURL = %q, want staging profile", flagURL)
	}
}

func TestInitWritesConfig(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	captureOutput(t)

	if err := runInit("http://maps.internal:8080", true, true); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfg, err := loadConfigFile(filepath.Join(home, ".routeviz", "config.yaml"))
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.activeURL() != "http://maps.internal:8080" {
		t.Errorf("active URL = %q", cfg.activeURL())
	}

	info, err := os.Stat(filepath.Join(home, ".routeviz", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}
}
