package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/colresize/internal/config"
	"github.com/oakwood-commons/colresize/internal/termtable"
)

// Palette holds the styles of everything outside the table body.
type Palette struct {
	Table  termtable.Styles
	Title  lipgloss.Style
	Status lipgloss.Style
	Notice lipgloss.Style
}

// NewPalette builds styles from theme colors. With noColor set only reverse
// video marks the selected row.
func NewPalette(theme config.ThemeConfig, noColor bool) Palette {
	if noColor {
		table := termtable.PlainStyles()
		table.Selected = lipgloss.NewStyle().Reverse(true)
		plain := lipgloss.NewStyle()
		return Palette{Table: table, Title: plain, Status: plain, Notice: plain}
	}

	table := termtable.DefaultStyles()
	if theme.Header != "" {
		table.Header = table.Header.Foreground(lipgloss.Color(theme.Header))
	}
	if theme.Border != "" {
		table.Border = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))
	}
	if theme.Focused != "" {
		table.Focused = table.Focused.Foreground(lipgloss.Color(theme.Focused))
	}
	if theme.Dragging != "" {
		table.Dragging = table.Dragging.Foreground(lipgloss.Color(theme.Dragging))
	}
	if theme.Selected != "" {
		table.Selected = lipgloss.NewStyle().Background(lipgloss.Color(theme.Selected))
	}
	return Palette{
		Table:  table,
		Title:  lipgloss.NewStyle().Bold(true),
		Status: lipgloss.NewStyle().Faint(true),
		Notice: table.Dragging,
	}
}
