package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/courtside/tariff-engine/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBPath != "tariff.db" {
		t.Errorf("expected default db path tariff.db, got %q", cfg.DBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TARIFF_ADDR", ":3000")
	t.Setenv("TARIFF_DB_PATH", ":memory:")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("env should override addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("env should override db path, got %q", cfg.DBPath)
	}
}

func TestLoad_EnvListValue(t *testing.T) {
	t.Setenv("TARIFF_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"http://a.example", "http://b.example"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.AllowedOrigins[i] != origin {
			t.Errorf("origin %d: expected %q, got %q", i, origin, cfg.AllowedOrigins[i])
		}
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "addr: \":9090\"\ndb_path: \"/tmp/file.db\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TARIFF_DB_PATH", "/tmp/env.db")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("file should set addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("env should beat file for db path, got %q", cfg.DBPath)
	}
}
