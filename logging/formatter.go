package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/prompts/tui/theme"
	"github.com/sirupsen/logrus"
)

// TextFormatter is a custom logrus formatter.
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	level := entry.Level.String()
	if level == "warning" {
		level = "warn"
	}
	fmt.Fprintf(&b, "[%s]", strings.ToUpper(level))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", theme.DefaultTheme.Accent.Render(fmt.Sprint(component)))
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Fields are sorted so output is stable.
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}
