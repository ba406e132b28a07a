package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State represents locally persisted shell settings as a generic map of
// key-value pairs. Local persistence is authoritative; remote syncs of
// individual keys (e.g. the API key) are best-effort on top of this.
type State map[string]interface{}

// KeyAPIKey is the state key under which the backend AI API key is stored.
const KeyAPIKey = "settings.api_key"

// stateFilePath returns the path to the state file, ~/.hardcore/state.yml.
// HARDCORE_STATE_DIR overrides the directory, mainly for tests.
func stateFilePath() (string, error) {
	if dir := os.Getenv("HARDCORE_STATE_DIR"); dir != "" {
		return filepath.Join(dir, "state.yml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}
	return filepath.Join(home, ".hardcore", "state.yml"), nil
}

// Load reads the state file. A missing file yields an empty state.
func Load() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if state == nil {
		state = State{}
	}
	return state, nil
}

// Save writes the state file, creating its directory if needed.
func Save(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	// Settings may hold credentials, keep the file private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Set stores a single value and persists immediately.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}
	state[key] = value
	return Save(state)
}

// Get returns a value and whether it was present.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}
	v, ok := state[key]
	return v, ok, nil
}

// GetString returns a string value, or empty string if unset.
func GetString(key string) (string, error) {
	v, ok, err := Get(key)
	if err != nil || !ok {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("state key %q is not a string", key)
	}
	return s, nil
}

// Delete removes a key and persists immediately. Removing a missing key
// is a no-op.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return Save(state)
}
