package config

import (
	"encoding/json"

	"github.com/grovetools/prompts/schema"
	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for prompts.yml. Extension keys
// are allowed at the root and are not described.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "Grove Prompts Configuration"
	s.Description = "Schema for prompts.yml properties."
	s.Version = "http://json-schema.org/draft-07/schema#"
	// Extensions live next to the known keys.
	s.AdditionalProperties = nil

	return json.MarshalIndent(s, "", "  ")
}

// SchemaValidator validates configuration against the embedded JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
