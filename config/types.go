package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the top-level hardcore.yml configuration.
type Config struct {
	Version   string          `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Config schema version"`
	Backend   BackendConfig   `yaml:"backend,omitempty" toml:"backend,omitempty" jsonschema:"description=Local backend service settings"`
	Board     BoardConfig     `yaml:"board,omitempty" toml:"board,omitempty" jsonschema:"description=Target board settings"`
	Workspace WorkspaceConfig `yaml:"workspace,omitempty" toml:"workspace,omitempty" jsonschema:"description=Generated project workspace settings"`

	// Extensions captures all other top-level keys for extensibility.
	// Tool-specific sections (e.g. "logging") live here and are decoded
	// on demand with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// BackendConfig describes how to reach the local orchestrator service.
type BackendConfig struct {
	// URL is the base URL of the backend HTTP API.
	URL string `yaml:"url,omitempty" toml:"url,omitempty" jsonschema:"description=Base URL of the backend HTTP API"`
	// LogFile is the path of the backend service log, used by `hardcore logs`.
	LogFile string `yaml:"log_file,omitempty" toml:"log_file,omitempty" jsonschema:"description=Path to the backend service log file"`
}

// BoardConfig holds the default target board.
type BoardConfig struct {
	// Default is the board id used until detection or manual selection
	// overrides it (e.g. "esp32dev", "uno").
	Default string `yaml:"default,omitempty" toml:"default,omitempty" jsonschema:"description=Default target board id"`
}

// WorkspaceConfig holds settings for the on-disk project workspace.
type WorkspaceConfig struct {
	// Dir is where generated firmware projects are written.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty" jsonschema:"description=Directory for generated firmware projects"`
}

// SetDefaults fills in default values for unset fields.
func (c *Config) SetDefaults() {
	if c.Backend.URL == "" {
		c.Backend.URL = "http://127.0.0.1:8000"
	}
	if c.Board.Default == "" {
		c.Board.Default = "esp32dev"
	}
	if c.Workspace.Dir == "" {
		c.Workspace.Dir = "~/.hardcore/projects"
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url must not be empty")
	}
	return nil
}

// UnmarshalExtension decodes a tool-specific extension section into a
// strongly-typed target struct. Missing keys are not an error; the
// target simply remains zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
