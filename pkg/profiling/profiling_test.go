package profiling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpansNest(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	Enable()

	outer := Start("load")
	Start("parse").Stop()
	outer.Stop()
	Start("save").Stop()

	var buf bytes.Buffer
	Summarize(&buf)
	out := buf.String()

	assert.Contains(t, out, "- load (")
	assert.Contains(t, out, "  - parse (")
	assert.Contains(t, out, "- save (")
	assert.NotContains(t, out, "  - save (")
	assert.Less(t, strings.Index(out, "load"), strings.Index(out, "save"))
}

func TestDisabledIsSilent(t *testing.T) {
	Reset()
	Start("ignored").Stop()

	var buf bytes.Buffer
	Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestUnstoppedChildIsClosedWithParent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	Enable()

	outer := Start("outer")
	Start("leaked")
	outer.Stop()
	Start("next").Stop()

	var buf bytes.Buffer
	Summarize(&buf)
	assert.Contains(t, buf.String(), "\n- next (")
}

func TestCobraTiming(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cmd := &cobra.Command{
		Use: "tool",
		Run: func(cmd *cobra.Command, args []string) {
			Start("work").Stop()
		},
	}
	NewCobraProfiler().Attach(cmd)

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--timing"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), "Timing Profile")
	assert.Contains(t, stderr.String(), "- work (")
}
