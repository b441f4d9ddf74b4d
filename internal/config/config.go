package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pranavj/mentis/internal/llm"
)

// File is the on-disk YAML configuration. Every field is optional; unset
// fields keep their defaults, and MENTIS_* environment variables override
// the file.
type File struct {
	DBPath string `yaml:"db_path"`

	LLM struct {
		Provider string `yaml:"provider"`

		Gemini struct {
			APIKey string `yaml:"api_key"`
			Model  string `yaml:"model"`
		} `yaml:"gemini"`

		OpenAI struct {
			APIKey  string `yaml:"api_key"`
			Model   string `yaml:"model"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"openai"`

		Anthropic struct {
			APIKey string `yaml:"api_key"`
			Model  string `yaml:"model"`
		} `yaml:"anthropic"`

		OpenRouter struct {
			APIKey string `yaml:"api_key"`
			Model  string `yaml:"model"`
		} `yaml:"openrouter"`
	} `yaml:"llm"`
}

// Config is the resolved application configuration.
type Config struct {
	DBPath string
	LLM    llm.Config
}

// DefaultPath returns the config file location:
// $XDG_CONFIG_HOME/mentis/config.yaml, falling back to ~/.config.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mentis", "config.yaml"), nil
}

// Load resolves the configuration: defaults, then the YAML file at path,
// then MENTIS_* environment variables. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Config{LLM: llm.DefaultConfig()}

	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if file != nil {
			applyFile(&cfg, file)
		}
	}

	cfg.LLM.ApplyEnv()
	if p := os.Getenv("MENTIS_DB"); p != "" {
		cfg.DBPath = p
	}

	return cfg, nil
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &file, nil
}

func applyFile(cfg *Config, f *File) {
	setIf(&cfg.DBPath, f.DBPath)
	setIf(&cfg.LLM.Provider, f.LLM.Provider)

	setIf(&cfg.LLM.Gemini.APIKey, f.LLM.Gemini.APIKey)
	setIf(&cfg.LLM.Gemini.Model, f.LLM.Gemini.Model)

	setIf(&cfg.LLM.OpenAI.APIKey, f.LLM.OpenAI.APIKey)
	setIf(&cfg.LLM.OpenAI.Model, f.LLM.OpenAI.Model)
	setIf(&cfg.LLM.OpenAI.BaseURL, f.LLM.OpenAI.BaseURL)

	setIf(&cfg.LLM.Anthropic.APIKey, f.LLM.Anthropic.APIKey)
	setIf(&cfg.LLM.Anthropic.Model, f.LLM.Anthropic.Model)

	setIf(&cfg.LLM.OpenRouter.APIKey, f.LLM.OpenRouter.APIKey)
	setIf(&cfg.LLM.OpenRouter.Model, f.LLM.OpenRouter.Model)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
