package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// Viper is a process-wide singleton; each test starts from a clean one.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// chdir is a stand-in for t.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir()) // no .env present

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Storage.SQLitePath != "dental.db" {
		t.Errorf("Storage.SQLitePath = %q, want dental.db", cfg.Storage.SQLitePath)
	}
	if cfg.Storage.Redis.KeyPrefix != "dental" {
		t.Errorf("Redis.KeyPrefix = %q, want dental", cfg.Storage.Redis.KeyPrefix)
	}
	if cfg.Policy.RestrictPatientRecords {
		t.Error("Policy.RestrictPatientRecords defaults to true, want false")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	env := "APP_PORT=9090\nSTORAGE_DRIVER=memory\nPOLICY_RESTRICT_PATIENT_RECORDS=true\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want 9090", cfg.App.Port)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}
	if !cfg.Policy.RestrictPatientRecords {
		t.Error("Policy.RestrictPatientRecords = false, want true")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Storage.Driver != "redis" {
		t.Errorf("Storage.Driver = %q, want redis", cfg.Storage.Driver)
	}
	if cfg.Storage.Redis.Host != "cache.internal" {
		t.Errorf("Redis.Host = %q, want cache.internal", cfg.Storage.Redis.Host)
	}
}
