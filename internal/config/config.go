// Package config loads the optional YAML configuration file and applies
// defaults. API keys never live in the file; they come from the
// environment (or a .env file loaded at startup).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names for credentials.
const (
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvNotionAPIKey     = "NOTION_API_KEY"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
)

// Summary providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	Notion        NotionConfig        `yaml:"notion"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type TranscriptionConfig struct {
	Language       string `yaml:"language"`
	Model          string `yaml:"model"`
	ChunkSeconds   int    `yaml:"chunk_seconds"`
	SizeLimitBytes int64  `yaml:"size_limit_bytes"`
}

type SummaryConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type NotionConfig struct {
	DatabaseID string `yaml:"database_id"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Inbox  string `yaml:"inbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Validate checks field values and fills in defaults for anything unset.
func (c *Config) Validate() error {
	if c.Transcription.Language == "" {
		c.Transcription.Language = "ja"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.ChunkSeconds == 0 {
		c.Transcription.ChunkSeconds = 300
	}
	if c.Transcription.ChunkSeconds < 0 {
		return fmt.Errorf("transcription.chunk_seconds must be positive")
	}
	if c.Transcription.SizeLimitBytes == 0 {
		c.Transcription.SizeLimitBytes = 25 * 1024 * 1024
	}
	if c.Transcription.SizeLimitBytes < 0 {
		return fmt.Errorf("transcription.size_limit_bytes must be positive")
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = ProviderOpenAI
	}
	if c.Summary.Provider != ProviderOpenAI && c.Summary.Provider != ProviderGemini {
		return fmt.Errorf("summary.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "inbox"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	_ = c.Validate()
	return c
}

// Load reads and validates the YAML file at path. A missing file is not
// an error: the defaults apply.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path chosen by the operator
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
