package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Database.Provider != "sqlite" {
		t.Errorf("expected default provider 'sqlite', got %s", cfg.Database.Provider)
	}
	if cfg.Generator.ModelsDir != "Models" {
		t.Errorf("expected default models dir 'Models', got %s", cfg.Generator.ModelsDir)
	}
	if cfg.Generator.Overwrite {
		t.Error("expected overwrite to default to false")
	}
	if cfg.RootNamespace != "" {
		t.Errorf("expected empty root namespace, got %s", cfg.RootNamespace)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
root_namespace: Acme.Shop
database:
  provider: postgres
  url: postgresql://localhost/shop
generator:
  models_dir: Domain/Models
  overwrite: true
`
	if err := os.WriteFile(filepath.Join(tmpDir, "weft.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RootNamespace != "Acme.Shop" {
		t.Errorf("expected root namespace 'Acme.Shop', got %s", cfg.RootNamespace)
	}
	if cfg.Database.Provider != "postgres" {
		t.Errorf("expected provider 'postgres', got %s", cfg.Database.Provider)
	}
	if cfg.Database.URL != "postgresql://localhost/shop" {
		t.Errorf("unexpected database url: %s", cfg.Database.URL)
	}
	if cfg.Generator.ModelsDir != "Domain/Models" {
		t.Errorf("expected models dir 'Domain/Models', got %s", cfg.Generator.ModelsDir)
	}
	if !cfg.Generator.Overwrite {
		t.Error("expected overwrite true")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
database:
  provider: oracle
`
	if err := os.WriteFile(filepath.Join(tmpDir, "weft.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatal("expected an error for unsupported provider")
	}
}
