package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DEFAULT_REGION", " gb ")
	t.Setenv("REGION_CATALOG_WORKERS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetDefaultRegion() != "GB" {
		t.Fatalf("expected default region GB, got %q", cfg.GetDefaultRegion())
	}
	if cfg.GetRegionCatalogWorkers() != 1 {
		t.Fatalf("expected workers clamped to 1, got %d", cfg.GetRegionCatalogWorkers())
	}
	if cfg.GetRegionCatalogTTL() != 24*time.Hour {
		t.Fatalf("expected 24h catalog TTL, got %s", cfg.GetRegionCatalogTTL())
	}
	if cfg.IsRedisEnabled() {
		t.Fatalf("expected redis disabled without REDIS_URL")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for wildcard CORS with credentials")
	}
}

func TestLoadCatalogOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	content := "countryNames:\n  xk: \" Kosovo \"\nexcludeRegions: [ac, \" ta \", \"\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write overrides: %v", err)
	}

	overrides, err := LoadCatalogOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overrides.CountryNames["XK"] != "Kosovo" {
		t.Fatalf("expected XK => Kosovo, got %q", overrides.CountryNames["XK"])
	}
	if !overrides.IsExcluded("AC") || !overrides.IsExcluded("TA") {
		t.Fatalf("expected AC and TA excluded, got %v", overrides.ExcludeRegions)
	}
	if len(overrides.ExcludeRegions) != 2 {
		t.Fatalf("expected blank entries dropped, got %v", overrides.ExcludeRegions)
	}
}

func TestLoadCatalogOverridesEmptyPath(t *testing.T) {
	overrides, err := LoadCatalogOverrides("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overrides.IsExcluded("US") {
		t.Fatalf("expected nothing excluded")
	}
}

func TestLoadCatalogOverridesMissingFile(t *testing.T) {
	if _, err := LoadCatalogOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
