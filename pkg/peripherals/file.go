package peripherals

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/schema"
)

// SaveFile writes the configuration as JSON.
func SaveFile(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal peripheral config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create config directory").
			WithDetail("path", path)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write peripheral config").
			WithDetail("path", path)
	}
	return nil
}

// LoadFile reads a peripheral configuration, validating it against the
// embedded JSON Schema before decoding.
func LoadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read peripheral config").
			WithDetail("path", path)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return cfg, errors.Wrap(err, errors.ErrCodeInternal, "failed to load peripheral schema")
	}
	if err := validator.Validate(data); err != nil {
		return cfg, errors.SchemaValidation(path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse peripheral config").
			WithDetail("path", path)
	}
	return cfg, nil
}
