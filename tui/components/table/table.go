// Package table renders themed lipgloss tables for command output.
package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/prompts/tui/theme"
)

// NewStyledTable creates a rounded table with a bold header row. A nil
// theme uses theme.DefaultTheme.
func NewStyledTable(t *theme.Theme) *ltable.Table {
	if t == nil {
		t = theme.DefaultTheme
	}
	header := t.Bold.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return header
			}
			return cell
		})
}

// Render builds a table from headers and rows and returns its string form.
func Render(t *theme.Theme, headers []string, rows [][]string) string {
	tbl := NewStyledTable(t).Headers(headers...)
	for _, row := range rows {
		tbl = tbl.Row(row...)
	}
	return tbl.String()
}
