// Package paths resolves where prompts keeps its files.
//
// Resolution order:
// 1. GROVE_HOME (portable root) → $GROVE_HOME/{config,data,state}
// 2. XDG env vars → $XDG_*_HOME/grove
// 3. Platform defaults → ~/.config/grove, ~/.local/share/grove, ~/.local/state/grove
package paths

import (
	"os"
	"path/filepath"
)

func home(groveSub, xdgVar string, fallback ...string) string {
	if groveHome := os.Getenv("GROVE_HOME"); groveHome != "" {
		return filepath.Join(groveHome, groveSub)
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, "grove")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, append(fallback, "grove")...)...)
	}
	return ""
}

// ConfigDir returns the directory holding the global prompts.yml.
func ConfigDir() string {
	return home("config", "XDG_CONFIG_HOME", ".config")
}

// DataDir returns the directory holding persisted documents.
func DataDir() string {
	return home("data", "XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the directory for logs and other runtime state.
func StateDir() string {
	return home("state", "XDG_STATE_HOME", ".local", "state")
}

// ConfigFile returns the global configuration file path, or "" when no home
// directory can be determined.
func ConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "prompts.yml")
}

// SnapshotFile returns the default snapshot location. Without any home
// directory it falls back to a path relative to the working directory.
func SnapshotFile() string {
	dir := DataDir()
	if dir == "" {
		return filepath.Join(".grove", "prompts", "store.json")
	}
	return filepath.Join(dir, "prompts", "store.json")
}

// LogFile returns the default log file used when file logging is enabled
// without a path.
func LogFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs", "prompts.log")
}
