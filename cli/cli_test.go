package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grovetools/prompts/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOptions(t *testing.T) {
	cmd := NewStandardCommand("prompts", "test")
	require.NoError(t, cmd.ParseFlags([]string{"--json", "-v", "--config", "/tmp/prompts.yml"}))

	opts := GetOptions(cmd)
	assert.True(t, opts.JSONOutput)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "/tmp/prompts.yml", opts.ConfigFile)
}

func TestHighlighter(t *testing.T) {
	src := []byte(`{"a": 1}`)

	t.Run("never returns input", func(t *testing.T) {
		h := NewHighlighter(&bytes.Buffer{}, "never", "dracula")
		assert.False(t, h.Enabled())
		assert.Equal(t, src, h.Highlight("json", src))
	})

	t.Run("auto is off for non-terminals", func(t *testing.T) {
		h := NewHighlighter(&bytes.Buffer{}, "auto", "dracula")
		assert.False(t, h.Enabled())
	})

	t.Run("always colours", func(t *testing.T) {
		h := NewHighlighter(&bytes.Buffer{}, "always", "no-such-style")
		out := string(h.Highlight("json", src))
		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, `"a"`)
	})

	t.Run("unknown language is passthrough", func(t *testing.T) {
		h := NewHighlighter(&bytes.Buffer{}, "always", "dracula")
		assert.Equal(t, src, h.Highlight("not-a-language-xyz", src))
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", errors.DocumentNotFound("doc-9"), "doc-9"},
		{"no current", errors.NoCurrentDocument(), "No current document"},
		{"invalid json", errors.InvalidJSON(assert.AnError), "invalid JSON"},
		{"generic", assert.AnError, assert.AnError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := NewErrorHandler(&buf, false).Handle(tt.err)
			assert.Equal(t, tt.err, got)
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	t.Run("verbose prints details", func(t *testing.T) {
		var buf bytes.Buffer
		_ = NewErrorHandler(&buf, true).Handle(errors.DocumentNotFound("doc-9"))
		assert.Contains(t, buf.String(), `"code": "DOCUMENT_NOT_FOUND"`)
	})

	assert.NoError(t, NewErrorHandler(&bytes.Buffer{}, false).Handle(nil))
}

func TestStyledHelp(t *testing.T) {
	root := NewStandardCommand("prompts", "Edit JSON prompt documents")
	root.AddCommand(&cobra.Command{Use: "list", Short: "List documents", Run: func(*cobra.Command, []string) {}})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	help := out.String()
	assert.Contains(t, help, "PROMPTS")
	assert.Contains(t, help, "COMMANDS")
	assert.Contains(t, help, "list")
	assert.Contains(t, help, "List documents")
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}
	assert.Equal(t, "keep\nbreaks", wrapText("keep\nbreaks", 40))
}
