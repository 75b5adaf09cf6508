package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
)

// TableColumn represents a column configuration
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row of data
type TableRow struct {
	Data  []string
	Style lipgloss.Style
}

// Table is a scrollable, read-only data table.
type Table struct {
	columns []TableColumn
	rows    []TableRow
	height  int
	offset  int

	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewTable creates a new table component
func NewTable(columns ...TableColumn) *Table {
	palette := style.DefaultPalette()

	return &Table{
		columns: columns,

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 1),
	}
}

// AddRow appends a row. A zero style falls back to the default row style.
func (t *Table) AddRow(data []string, rowStyle ...lipgloss.Style) *Table {
	s := t.rowStyle
	if len(rowStyle) > 0 {
		s = rowStyle[0]
	}
	t.rows = append(t.rows, TableRow{Data: data, Style: s})
	return t
}

// Clear removes all rows from the table
func (t *Table) Clear() *Table {
	t.rows = t.rows[:0]
	t.clampOffset()
	return t
}

// Rows returns the cell text of every row.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Data
	}
	return out
}

// SetHeight limits the number of visible rows. Zero shows all of them.
func (t *Table) SetHeight(height int) *Table {
	t.height = height
	t.clampOffset()
	return t
}

// ScrollUp moves the window one row up
func (t *Table) ScrollUp() *Table {
	if t.offset > 0 {
		t.offset--
	}
	return t
}

// ScrollDown moves the window one row down
func (t *Table) ScrollDown() *Table {
	t.offset++
	t.clampOffset()
	return t
}

func (t *Table) clampOffset() {
	limit := 0
	if t.height > 0 && len(t.rows) > t.height {
		limit = len(t.rows) - t.height
	}
	if t.offset > limit {
		t.offset = limit
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// View renders the table
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	var content strings.Builder

	for i, col := range t.columns {
		content.WriteString(renderCell(col.Header, col.Width, col.Align, t.headerStyle))
		if i < len(t.columns)-1 {
			content.WriteString("│")
		}
	}
	content.WriteString("\n")

	for i, col := range t.columns {
		content.WriteString(strings.Repeat("─", col.Width))
		if i < len(t.columns)-1 {
			content.WriteString("┼")
		}
	}

	if len(t.rows) == 0 {
		content.WriteString("\n")
		content.WriteString(t.mutedStyle.Render("no rows"))
		return content.String()
	}

	end := len(t.rows)
	if t.height > 0 && t.offset+t.height < end {
		end = t.offset + t.height
	}
	for _, row := range t.rows[t.offset:end] {
		content.WriteString("\n")
		for i, col := range t.columns {
			cellData := ""
			if i < len(row.Data) {
				cellData = row.Data[i]
			}
			content.WriteString(renderCell(cellData, col.Width, col.Align, row.Style))
			if i < len(t.columns)-1 {
				content.WriteString("│")
			}
		}
	}

	return content.String()
}

// renderCell renders a single table cell, truncating overlong content by
// display width.
func renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	inner := width - cellStyle.GetHorizontalPadding()
	if inner > 0 && ansi.StringWidth(content) > inner {
		tail := "..."
		if inner <= len(tail) {
			tail = ""
		}
		content = ansi.Truncate(content, inner, tail)
	}
	return cellStyle.Width(width).Align(align).Render(content)
}
