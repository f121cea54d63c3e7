package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/grovetools/prompts/errors"
)

var highlightModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validatePath("storage.path", c.Storage.Path); err != nil {
		return err
	}

	if c.Storage.WatchDebounceMs < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "storage.watch_debounce_ms cannot be negative").
			WithDetail("watch_debounce_ms", c.Storage.WatchDebounceMs)
	}

	if c.Editor.Highlight != "" && !highlightModes[c.Editor.Highlight] {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("invalid editor.highlight '%s' (must be auto, always or never)", c.Editor.Highlight)).
			WithDetail("highlight", c.Editor.Highlight)
	}

	return nil
}

// validatePath validates that a path is appropriate for the current OS
func validatePath(fieldName, path string) error {
	if path == "" {
		return nil
	}

	if runtime.GOOS != "windows" && filepath.IsAbs(path) && strings.Contains(path, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Windows-style path on Unix system", fieldName)).
			WithDetail("path", path)
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Unix-style path on Windows system", fieldName)).
			WithDetail("path", path)
	}

	return nil
}
