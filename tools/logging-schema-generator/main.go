package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/prompts/logging"
	"github.com/invopop/jsonschema"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&logging.Config{})
	schema.Title = "Prompts Logging Configuration"
	schema.Description = "Schema for the 'logging' extension in prompts.yml."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	outputPath := filepath.Join("schema", "logging.schema.json")
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated logging schema at %s", outputPath)
}
