package config

import (
	"fmt"

	"github.com/grovetools/prompts/util/pathutil"
	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// StorageConfig controls where prompt documents are persisted.
type StorageConfig struct {
	Path            string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Path of the snapshot file (default: $XDG_DATA_HOME/grove/prompts/store.json)"`
	AutoSave        *bool  `yaml:"auto_save,omitempty" toml:"auto_save,omitempty" json:"auto_save,omitempty" jsonschema:"description=Save the snapshot after every edit in the editor (default: true)"`
	WatchDebounceMs int    `yaml:"watch_debounce_ms,omitempty" toml:"watch_debounce_ms,omitempty" json:"watch_debounce_ms,omitempty" jsonschema:"description=Debounce window for reloading the snapshot when it changes on disk (default: 100)"`
}

// EditorConfig controls the tree viewer and CLI rendering.
type EditorConfig struct {
	DefaultExpandAll bool   `yaml:"default_expand_all,omitempty" toml:"default_expand_all,omitempty" json:"default_expand_all,omitempty" jsonschema:"description=Expand every node when a document is opened"`
	Highlight        string `yaml:"highlight,omitempty" toml:"highlight,omitempty" json:"highlight,omitempty" jsonschema:"enum=auto,enum=always,enum=never,description=Syntax highlighting of JSON output (default: auto)"`
	Theme            string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"description=Chroma style used for highlighting (default: dracula)"`
}

// Config represents the prompts.yml configuration
type Config struct {
	Version string        `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Storage StorageConfig `yaml:"storage,omitempty" toml:"storage,omitempty" json:"storage,omitempty" jsonschema:"description=Snapshot storage settings"`
	Editor  EditorConfig  `yaml:"editor,omitempty" toml:"editor,omitempty" json:"editor,omitempty" jsonschema:"description=Editor and rendering settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Storage.AutoSave == nil {
		trueVal := true
		c.Storage.AutoSave = &trueVal
	}
	if c.Storage.WatchDebounceMs == 0 {
		c.Storage.WatchDebounceMs = 100
	}
	if c.Editor.Highlight == "" {
		c.Editor.Highlight = "auto"
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = "dracula"
	}
}

// SnapshotPath returns the configured snapshot path with ~ and environment
// variables expanded, or "" when none is configured.
func (c *Config) SnapshotPath() string {
	return pathutil.Expand(c.Storage.Path)
}

// AutoSaveEnabled reports whether the editor saves after every edit.
func (c *Config) AutoSaveEnabled() bool {
	return c.Storage.AutoSave == nil || *c.Storage.AutoSave
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded prompts.yml into the provided target struct. The target must be a
// pointer. A missing key leaves the target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
