// Package schema validates peripheral configuration files against the
// embedded JSON Schema generated from the Go types.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed peripherals.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates peripheral configurations against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("peripherals.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("peripherals.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates configuration data against the schema. It accepts
// any struct that can be marshaled to JSON, or raw JSON bytes.
func (v *Validator) Validate(configData interface{}) error {
	var doc interface{}

	switch data := configData.(type) {
	case []byte:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		// Round-trip the Go struct to a generic document so the schema
		// sees plain JSON-like objects.
		jsonData, err := json.Marshal(configData)
		if err != nil {
			return fmt.Errorf("failed to marshal config for validation: %w", err)
		}
		if err := json.Unmarshal(jsonData, &doc); err != nil {
			return fmt.Errorf("failed to round-trip config for validation: %w", err)
		}
	}

	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
