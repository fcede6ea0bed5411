package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "DB_DRIVER", "DB_PATH", "CACHE_TTL", "HTTP_ADDR", "HTTP_SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != EnvLocal {
		t.Fatalf("Env = %q; want %q", cfg.Env, EnvLocal)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "equipeapp.sqlite" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Cache.TTL != 60*time.Second {
		t.Fatalf("Cache.TTL = %v; want 60s", cfg.Cache.TTL)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	for _, k := range []string{"ENV", "DB_PATH", "CACHE_TTL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("CACHE_TTL", "5s")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "ENV=prod\nDB_PATH=/tmp/team.sqlite\nCACHE_TTL=90s\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != EnvProd || cfg.Database.Path != "/tmp/team.sqlite" {
		t.Fatalf("expected values from env file, got %+v", cfg)
	}
	if cfg.Cache.TTL != 5*time.Second {
		t.Fatalf("expected process env to win over env file, got %v", cfg.Cache.TTL)
	}
}
