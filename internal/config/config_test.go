package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("provider = %q, want gemini default", cfg.LLM.Provider)
	}
	if cfg.LLM.Gemini.Model != "gemini-flash" {
		t.Fatalf("model = %q", cfg.LLM.Gemini.Model)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "llm: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/custom.db
llm:
  provider: anthropic
  anthropic:
    api_key: file-key
    model: claude-sonnet
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Fatalf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Anthropic.APIKey != "file-key" || cfg.LLM.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("anthropic = %+v", cfg.LLM.Anthropic)
	}
	// Untouched sections keep their defaults.
	if cfg.LLM.OpenAI.Model != "gpt-5-mini" {
		t.Fatalf("openai model = %q", cfg.LLM.OpenAI.Model)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: openai
  openai:
    api_key: from-file
`)
	t.Setenv("MENTIS_OPENAI_API_KEY", "from-env")
	t.Setenv("MENTIS_DB", "/tmp/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.OpenAI.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want env to win", cfg.LLM.OpenAI.APIKey)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join("/xdg", "mentis", "config.yaml") {
		t.Fatalf("path = %q", path)
	}
}
