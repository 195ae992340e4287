package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	LLM       LLMConfig       `json:"llm"`
	GitHub    GitHubConfig    `json:"github"`
	Extractor ExtractorConfig `json:"extractor"`
}

type LLMConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
}

type GitHubConfig struct {
	BaseURL    string `json:"base_url"`
	Repository string `json:"repository"`
}

type ExtractorConfig struct {
	Workers            int      `json:"workers"`
	FileTimeoutSeconds int      `json:"file_timeout_seconds"`
	Exclude            []string `json:"exclude"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
