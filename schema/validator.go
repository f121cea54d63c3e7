// Package schema validates prompts configuration against its JSON Schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed prompts.schema.json
var embeddedSchemaData []byte

const schemaURL = "prompts.json"

var (
	compiled    *jsonschema.Schema
	compileErr  error
	compileOnce sync.Once
)

// Schema returns the raw embedded schema document.
func Schema() []byte {
	return embeddedSchemaData
}

// Validator validates configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator returns a validator for the embedded schema. The schema is
// compiled once per process.
func NewValidator() (*Validator, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(schemaURL, strings.NewReader(string(embeddedSchemaData))); err != nil {
			compileErr = fmt.Errorf("failed to add embedded schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile embedded schema: %w", compileErr)
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks any value that marshals to JSON, typically a *config.Config
// or a map decoded from YAML.
func (v *Validator) Validate(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}
	return v.ValidateJSON(raw)
}

// ValidateJSON checks raw JSON text.
func (v *Validator) ValidateJSON(raw []byte) error {
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(instance); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			messages := flatten(validationErr, nil)
			sort.Strings(messages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(messages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// flatten lists the leaf causes of err, one line per failing location.
func flatten(err *jsonschema.ValidationError, messages []string) []string {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return append(messages, fmt.Sprintf("- %s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		messages = flatten(cause, messages)
	}
	return messages
}
