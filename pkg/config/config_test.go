package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	raw := `{
		"llm": {
			"provider": "ollama",
			"model": "qwen2.5:14b",
			"base_url": "http://localhost:11434"
		},
		"github": {
			"repository": "owner/repo"
		},
		"extractor": {
			"workers": 4,
			"file_timeout_seconds": 5,
			"exclude": ["vendor/**", "**/*.min.js"]
		}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "qwen2.5:14b" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.GitHub.Repository != "owner/repo" {
		t.Errorf("unexpected github config: %+v", cfg.GitHub)
	}
	if cfg.Extractor.Workers != 4 || cfg.Extractor.FileTimeoutSeconds != 5 {
		t.Errorf("unexpected extractor config: %+v", cfg.Extractor)
	}
	if want := []string{"vendor/**", "**/*.min.js"}; !reflect.DeepEqual(cfg.Extractor.Exclude, want) {
		t.Errorf("Exclude = %v, want %v", cfg.Extractor.Exclude, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
