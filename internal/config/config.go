package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the server settings. Values resolve in three layers:
// built-in defaults, then an optional YAML file named by SCANLESS_CONFIG,
// then individual SCANLESS_* environment variables.
type Config struct {
	// Port is the HTTP listen port. The server binds all interfaces.
	Port string `yaml:"port"`
	// OutputDir is where exported PDFs are persisted. Created if absent.
	OutputDir string `yaml:"output_dir"`
	// OCREngine selects the recognition backend: tesseract, gemini, or ollama.
	OCREngine string `yaml:"ocr_engine"`
	// Languages are trained-data hints passed to the OCR engine.
	Languages []string `yaml:"languages"`
	// Resolution is the coordinate DPI used when assembling export pages.
	Resolution int `yaml:"resolution"`
}

func defaults() *Config {
	return &Config{
		Port:       "7500",
		OutputDir:  os.TempDir(),
		OCREngine:  "tesseract",
		Languages:  []string{"eng"},
		Resolution: 300,
	}
}

// Load resolves the effective configuration.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("SCANLESS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("SCANLESS_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("SCANLESS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("SCANLESS_OCR_ENGINE"); v != "" {
		cfg.OCREngine = v
	}
	if v := os.Getenv("SCANLESS_OCR_LANGUAGES"); v != "" {
		cfg.Languages = splitList(v)
	}

	if cfg.Port == "" {
		cfg.Port = "7500"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = 300
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
