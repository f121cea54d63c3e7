package starship

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	state := prompts.State{
		Documents:         []prompts.Document{{ID: "d1", Name: "greeting"}},
		CurrentDocumentID: "d1",
	}
	assert.Equal(t, "✎ greeting", Status(state))
	assert.Equal(t, "", Status(prompts.State{}))

	saved := GetProviders()
	t.Cleanup(func() { providers = saved })

	RegisterProvider(func(s prompts.State) (string, error) { return "2 docs", nil })
	assert.Equal(t, "✎ greeting | 2 docs", Status(state))

	ClearProviders()
	assert.Empty(t, Status(state))
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	configPath := testutil.WriteFile(t, dir, "starship.toml", "format = \"\"\"\n$directory\\\n$git_metrics\\\n$character\"\"\"\n")

	var out bytes.Buffer
	require.NoError(t, install(&out, configPath, "prompts"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[custom.prompts]")
	assert.Contains(t, content, `command = "prompts starship status"`)
	assert.Contains(t, content, "$git_metrics\\\n${custom.prompts}\\")

	// A second install refreshes the module in place.
	out.Reset()
	require.NoError(t, install(&out, configPath, "prompts"))
	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "[custom.prompts]"))
	assert.Contains(t, out.String(), "Updated existing")
}

func TestInstallMissingConfig(t *testing.T) {
	err := install(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.toml"), "prompts")
	assert.ErrorContains(t, err, "starship config not found")
}
