package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hardcoreai/shell/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names searched for, in order.
var configFileNames = []string{"hardcore.yml", "hardcore.yaml", "hardcore.toml"}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a hardcore configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parse(path, data)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return cfg, nil
}

// LoadDefault loads the configuration with hierarchical merging:
// 1. Global config (~/.config/hardcore/hardcore.yml) - base layer
// 2. Project config (hardcore.yml, found by walking up from cwd) - overrides global
// A missing config on both layers is not an error; defaults apply.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory.
func LoadFrom(startDir string) (*Config, error) {
	final := &Config{}

	// 1. Global config is optional.
	if globalPath := globalConfigPath(); globalPath != "" {
		if data, err := os.ReadFile(globalPath); err == nil {
			if cfg, err := parse(globalPath, data); err == nil {
				final = cfg
			}
		}
	}

	// 2. Project config overrides the global layer field by field.
	if projectPath, err := FindConfigFile(startDir); err == nil {
		data, err := os.ReadFile(projectPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read project config").
				WithDetail("path", projectPath)
		}
		cfg, err := parse(projectPath, data)
		if err != nil {
			return nil, err
		}
		final.merge(cfg)
	}

	final.SetDefaults()
	if err := final.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return final, nil
}

// FindConfigFile walks up from startDir looking for a config file.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
		}
		dir = parent
	}
}

func parse(path string, data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	var err error
	if strings.HasSuffix(path, ".toml") {
		err = toml.Unmarshal([]byte(expanded), &cfg)
	} else {
		err = yaml.Unmarshal([]byte(expanded), &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
			WithDetail("path", path)
	}
	return &cfg, nil
}

// merge overlays non-zero fields from other onto c.
func (c *Config) merge(other *Config) {
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.Backend.URL != "" {
		c.Backend.URL = other.Backend.URL
	}
	if other.Backend.LogFile != "" {
		c.Backend.LogFile = other.Backend.LogFile
	}
	if other.Board.Default != "" {
		c.Board.Default = other.Board.Default
	}
	if other.Workspace.Dir != "" {
		c.Workspace.Dir = other.Workspace.Dir
	}
	for k, v := range other.Extensions {
		if c.Extensions == nil {
			c.Extensions = make(map[string]interface{})
		}
		c.Extensions[k] = v
	}
}

func globalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hardcore", "hardcore.yml")
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
