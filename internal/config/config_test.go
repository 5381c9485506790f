package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Austuin/HoneyBadgerTool/internal/config"
	"github.com/Austuin/HoneyBadgerTool/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.Task.DataDir != "" {
		t.Error("expected empty task data dir")
	}
	if cfg.Server.Addr != "" {
		t.Error("expected empty server addr")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[task]
data-dir = "/srv/honeybadger"

[server]
addr = ":9000"
db-path = "/srv/honeybadger/pro.db"
`

	path := filepath.Join(tmpDir, "honeybadger.toml")
	if err := os.WriteFile(path, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Task.DataDir != "/srv/honeybadger" {
		t.Errorf("DataDir = %q, expected %q", cfg.Task.DataDir, "/srv/honeybadger")
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Server.DBPath != "/srv/honeybadger/pro.db" {
		t.Errorf("DBPath = %q, expected %q", cfg.Server.DBPath, "/srv/honeybadger/pro.db")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "honeybadger.toml")
	if err := os.WriteFile(path, []byte(`this is not valid toml [`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UsesGlobalWhenLocalMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "honeybadger")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
[task]
data-dir = "/global/data"

[server]
addr = ":8400"
`

	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Task.DataDir != "/global/data" {
		t.Errorf("DataDir = %q, expected %q", cfg.Task.DataDir, "/global/data")
	}
	if cfg.Server.Addr != ":8400" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, ":8400")
	}
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	configDir := filepath.Join(homeDir, ".config", "honeybadger")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	globalContent := `
[task]
data-dir = "/global/data"

[server]
addr = ":8400"
`
	globalPath := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	localContent := `
[server]
addr = ":9100"
`
	localDir := t.TempDir()
	localPath := filepath.Join(localDir, "honeybadger.toml")
	if err := os.WriteFile(localPath, []byte(localContent), 0o644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	cfg, err := config.Load(localPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Task.DataDir != "/global/data" {
		t.Errorf("DataDir = %q, expected %q", cfg.Task.DataDir, "/global/data")
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, ":9100")
	}
}

func TestDefaults(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)

	cfg := &config.Config{}

	dataDir, err := cfg.DataDir()
	if err != nil {
		t.Fatalf("resolve data dir: %v", err)
	}
	if dataDir != filepath.Join(homeDir, ".honeybadger") {
		t.Errorf("DataDir = %q, expected under %q", dataDir, homeDir)
	}

	if addr := cfg.ServerAddr(); addr != ":8300" {
		t.Errorf("ServerAddr = %q, expected :8300", addr)
	}

	dbPath, err := cfg.ServerDBPath()
	if err != nil {
		t.Fatalf("resolve db path: %v", err)
	}
	if dbPath != filepath.Join(homeDir, ".honeybadger", "pro.db") {
		t.Errorf("ServerDBPath = %q, expected under data dir", dbPath)
	}
}
