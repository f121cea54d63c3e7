package config

import (
	"encoding/json"
	"testing"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}

	if schema["title"] != "Grove Prompts Configuration" {
		t.Errorf("unexpected title: %v", schema["title"])
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("expected properties to be defined")
	}
	for _, key := range []string{"version", "storage", "editor"} {
		if _, ok := props[key]; !ok {
			t.Errorf("expected property %q", key)
		}
	}
	if _, ok := props["Extensions"]; ok {
		t.Error("extensions must not appear as a property")
	}
	if additional, ok := schema["additionalProperties"]; ok && additional == false {
		t.Error("root must allow extension keys")
	}
}

func TestSchemaValidatorAcceptsLoadedConfig(t *testing.T) {
	validator, err := NewSchemaValidator()
	if err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	cfg.SetDefaults()
	if err := validator.Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
