package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseYear != 2025 || cfg.Semesters != 6 || cfg.MaxCredits != 30 {
		t.Errorf("unexpected planner defaults: %+v", cfg)
	}
	if cfg.CreditTarget != 120 {
		t.Errorf("CreditTarget = %d, want 120", cfg.CreditTarget)
	}
	if cfg.Store != StoreFiles {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreFiles)
	}
	if cfg.ReportTemplate != DefaultReportTemplate {
		t.Error("expected built-in report template")
	}
}

func TestLoadTomlOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configDir := filepath.Join(tempDir, ".config", "studiplan")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `base_year = 2026
semesters = 4
store = "sqlite"
catalog = "/srv/kursliste.json"
`
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseYear != 2026 {
		t.Errorf("BaseYear = %d, want 2026", cfg.BaseYear)
	}
	if cfg.Semesters != 4 {
		t.Errorf("Semesters = %d, want 4", cfg.Semesters)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("Store = %q, want sqlite", cfg.Store)
	}
	if cfg.CatalogPath != "/srv/kursliste.json" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	// Unset keys keep their defaults
	if cfg.MaxCredits != 30 {
		t.Errorf("MaxCredits = %d, want default 30", cfg.MaxCredits)
	}
}

func TestLoadCustomTemplate(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configDir := filepath.Join(tempDir, ".config", "studiplan")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "Fortschritt: {{total}}/{{target}}"
	if err := os.WriteFile(filepath.Join(configDir, "report_template.txt"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ReportTemplate != custom {
		t.Errorf("ReportTemplate = %q, want custom template", cfg.ReportTemplate)
	}
}
