package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders a lipgloss-styled fixed-width table.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates a table with the given columns.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Render returns the table as a string. Cells are padded manually to exact
// column widths; lipgloss styles only color them.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	var sb strings.Builder

	var headers []string
	for _, col := range t.Columns {
		headers = append(headers, headerStyle.Render(pad(col.Title, col.Width)))
	}
	sb.WriteString(strings.Join(headers, " "))
	sb.WriteString("\n")

	var divider []string
	for _, col := range t.Columns {
		divider = append(divider, dimStyle.Render(strings.Repeat("-", col.Width)))
	}
	sb.WriteString(strings.Join(divider, " "))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		var cells []string
		for i, col := range t.Columns {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells = append(cells, cellStyle.Render(pad(val, col.Width)))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// pad returns s left-aligned within exactly width display cells, truncating
// if needed. Widths are measured in terminal cells, not bytes, so multi-byte
// runes like the truncation ellipsis keep columns aligned.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		var b strings.Builder
		w = 0
		for _, r := range s {
			rw := lipgloss.Width(string(r))
			if w+rw > width {
				break
			}
			b.WriteRune(r)
			w += rw
		}
		s = b.String()
	}
	return s + strings.Repeat(" ", width-w)
}
