package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/prompts/errors"
)

// TestExtensions verifies that custom extensions in prompts.yml are properly loaded
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
editor:
  highlight: never

# Extension read by the logging package
logging:
  level: debug
  report_caller: true

# Extension from another hypothetical tool
sync:
  enabled: true
  interval: 30
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Editor.Highlight != "never" {
		t.Errorf("Expected highlight 'never', got '%s'", cfg.Editor.Highlight)
	}

	if _, ok := cfg.Extensions["editor"]; ok {
		t.Error("Core keys must not be captured as extensions")
	}

	type LoggingConfig struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}

	var logCfg LoggingConfig
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.Level != "debug" || !logCfg.ReportCaller {
		t.Errorf("Unexpected logging extension: %+v", logCfg)
	}

	type SyncConfig struct {
		Enabled  bool `yaml:"enabled"`
		Interval int  `yaml:"interval"`
	}

	var syncCfg SyncConfig
	if err := cfg.UnmarshalExtension("sync", &syncCfg); err != nil {
		t.Fatalf("Failed to unmarshal sync extension: %v", err)
	}
	if !syncCfg.Enabled || syncCfg.Interval != 30 {
		t.Errorf("Unexpected sync extension: %+v", syncCfg)
	}

	var missing SyncConfig
	if err := cfg.UnmarshalExtension("absent", &missing); err != nil {
		t.Errorf("Missing extension should not be an error: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`{}`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Version != "1.0" {
		t.Errorf("Expected default version '1.0', got '%s'", cfg.Version)
	}
	if !cfg.AutoSaveEnabled() {
		t.Error("Expected auto save to default to true")
	}
	if cfg.Storage.WatchDebounceMs != 100 {
		t.Errorf("Expected debounce 100, got %d", cfg.Storage.WatchDebounceMs)
	}
	if cfg.Editor.Highlight != "auto" || cfg.Editor.Theme != "dracula" {
		t.Errorf("Unexpected editor defaults: %+v", cfg.Editor)
	}
	if cfg.SnapshotPath() != "" {
		t.Errorf("Expected no snapshot path, got '%s'", cfg.SnapshotPath())
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("PROMPTS_TEST_DIR", "/data/prompts")

	cfg, err := LoadFromBytes([]byte(`
storage:
  path: ${PROMPTS_TEST_DIR}/store.json
editor:
  theme: ${PROMPTS_TEST_THEME:-monokai}
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Storage.Path != "/data/prompts/store.json" {
		t.Errorf("Expected expanded path, got '%s'", cfg.Storage.Path)
	}
	if cfg.Editor.Theme != "monokai" {
		t.Errorf("Expected default theme 'monokai', got '%s'", cfg.Editor.Theme)
	}
}

func TestSnapshotPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := &Config{Storage: StorageConfig{Path: "~/prompts/store.json"}}
	want := filepath.Join(home, "prompts", "store.json")
	if got := cfg.SnapshotPath(); got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.toml")
	content := `
version = "1.0"

[storage]
path = "/tmp/store.json"
auto_save = false

[logging]
level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Storage.Path != "/tmp/store.json" {
		t.Errorf("Expected storage path from TOML, got '%s'", cfg.Storage.Path)
	}
	if cfg.AutoSaveEnabled() {
		t.Error("Expected auto save disabled")
	}

	var logCfg struct {
		Level string `yaml:"level"`
	}
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatal(err)
	}
	if logCfg.Level != "warn" {
		t.Errorf("Expected TOML extension level 'warn', got '%s'", logCfg.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"malformed yaml", "editor: [unclosed", errors.ErrCodeConfigInvalid},
		{"schema violation", "editor:\n  highlight: sometimes\n", errors.ErrCodeConfigValidation},
		{"unknown storage key", "storage:\n  bucket: x\n", errors.ErrCodeConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Expected code %s, got %v", tt.code, err)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("Expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("GROVE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, ".prompts.yml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("Expected to find config: %v", err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}
