package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SCANLESS_CONFIG", "SCANLESS_PORT", "SCANLESS_OUTPUT_DIR", "SCANLESS_OCR_ENGINE", "SCANLESS_OCR_LANGUAGES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "7500" {
		t.Errorf("Expected default port 7500, got %s", cfg.Port)
	}
	if cfg.OutputDir != os.TempDir() {
		t.Errorf("Expected default output dir %s, got %s", os.TempDir(), cfg.OutputDir)
	}
	if cfg.OCREngine != "tesseract" {
		t.Errorf("Expected default engine tesseract, got %s", cfg.OCREngine)
	}
	if len(cfg.Languages) != 1 || cfg.Languages[0] != "eng" {
		t.Errorf("Expected default languages [eng], got %v", cfg.Languages)
	}
	if cfg.Resolution != 300 {
		t.Errorf("Expected default resolution 300, got %d", cfg.Resolution)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCANLESS_PORT", "8080")
	t.Setenv("SCANLESS_OUTPUT_DIR", "/var/scans")
	t.Setenv("SCANLESS_OCR_ENGINE", "gemini")
	t.Setenv("SCANLESS_OCR_LANGUAGES", "eng, deu ,fra")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.OutputDir != "/var/scans" {
		t.Errorf("Expected output dir /var/scans, got %s", cfg.OutputDir)
	}
	if cfg.OCREngine != "gemini" {
		t.Errorf("Expected engine gemini, got %s", cfg.OCREngine)
	}
	want := []string{"eng", "deu", "fra"}
	if len(cfg.Languages) != len(want) {
		t.Fatalf("Expected languages %v, got %v", want, cfg.Languages)
	}
	for i := range want {
		if cfg.Languages[i] != want[i] {
			t.Errorf("Expected language %s at %d, got %s", want[i], i, cfg.Languages[i])
		}
	}
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scanless.yaml")
	content := []byte("port: \"9000\"\nocr_engine: ollama\nresolution: 600\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SCANLESS_CONFIG", path)
	t.Setenv("SCANLESS_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Env wins over the file.
	if cfg.Port != "9001" {
		t.Errorf("Expected env port 9001, got %s", cfg.Port)
	}
	if cfg.OCREngine != "ollama" {
		t.Errorf("Expected file engine ollama, got %s", cfg.OCREngine)
	}
	if cfg.Resolution != 600 {
		t.Errorf("Expected file resolution 600, got %d", cfg.Resolution)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("SCANLESS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
