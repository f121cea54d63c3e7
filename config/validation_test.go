package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"zero config", Config{}, true},
		{"highlight auto", Config{Editor: EditorConfig{Highlight: "auto"}}, true},
		{"highlight bogus", Config{Editor: EditorConfig{Highlight: "rainbow"}}, false},
		{"negative debounce", Config{Storage: StorageConfig{WatchDebounceMs: -5}}, false},
		{"unix path", Config{Storage: StorageConfig{Path: "/var/lib/prompts.json"}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
