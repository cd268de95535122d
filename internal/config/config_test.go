package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SKETCH_DATA_DIR", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("SKETCH_MODEL", "")
	t.Setenv("SKETCH_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.APIKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKETCH_DATA_DIR", dir)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("SKETCH_MODEL", "")
	t.Setenv("SKETCH_BASE_URL", "")

	content := "api_key: file-key\nmodel: custom-model\nactive_space_id: space-1\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
	if cfg.Model != "custom-model" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.ActiveSpaceID != "space-1" {
		t.Errorf("active space = %q", cfg.ActiveSpaceID)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SKETCH_DATA_DIR", dir)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("SKETCH_MODEL", "env-model")
	t.Setenv("SKETCH_BASE_URL", "")

	content := "api_key: file-key\nmodel: file-model\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api key = %q, want env override", cfg.APIKey)
	}
	if cfg.Model != "env-model" {
		t.Errorf("model = %q, want env override", cfg.Model)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("SKETCH_DATA_DIR", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("SKETCH_MODEL", "")
	t.Setenv("SKETCH_BASE_URL", "")

	if err := Save(&Config{Model: "saved-model", ActiveSpaceID: "space-9"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "saved-model" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.ActiveSpaceID != "space-9" {
		t.Errorf("active space = %q", cfg.ActiveSpaceID)
	}
}
