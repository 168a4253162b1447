package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Source.URL != DefaultSheetURL {
		t.Errorf("Source.URL = %q, want default publish URL", cfg.Source.URL)
	}
	if cfg.Source.SheetGID != "0" {
		t.Errorf("Source.SheetGID = %q, want %q", cfg.Source.SheetGID, "0")
	}
	if cfg.Fetch.Timeout != 20*time.Second {
		t.Errorf("Fetch.Timeout = %v, want 20s", cfg.Fetch.Timeout)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SHEET_URL", "https://example.com/data.csv")
	t.Setenv("SHEET_ID", "1abcDEF")
	t.Setenv("SHEET_GID", "42")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Source.URL != "https://example.com/data.csv" {
		t.Errorf("Source.URL = %q", cfg.Source.URL)
	}
	if cfg.Source.SheetID != "1abcDEF" {
		t.Errorf("Source.SheetID = %q", cfg.Source.SheetID)
	}
	if cfg.Source.SheetGID != "42" {
		t.Errorf("Source.SheetGID = %q", cfg.Source.SheetGID)
	}
	if cfg.Fetch.Timeout != 5*time.Second {
		t.Errorf("Fetch.Timeout = %v, want 5s", cfg.Fetch.Timeout)
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Fetch.Timeout != 20*time.Second {
		t.Errorf("Fetch.Timeout = %v, want default 20s", cfg.Fetch.Timeout)
	}
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECONDS", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a negative fetch timeout")
	}
}
