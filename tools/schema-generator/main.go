// Command schema-generator regenerates the embedded JSON Schema for
// peripheral configuration files from the Go types.
//
// Run from the repo root:
//
//	go run ./tools/schema-generator
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hardcoreai/shell/pkg/peripherals"
	"github.com/invopop/jsonschema"
)

const outputPath = "schema/peripherals.embedded.schema.json"

func main() {
	reflector := &jsonschema.Reflector{
		DoNotReference:            false,
		AllowAdditionalProperties: false,
	}

	schema := reflector.Reflect(&peripherals.Config{})
	schema.ID = "https://github.com/hardcoreai/shell/pkg/peripherals/config"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schema: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", outputPath)
}
