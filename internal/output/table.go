package output

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Table renders aligned columns for text output.
type Table struct {
	headers   []string
	rows      [][]string
	separator string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, separator: "  "}
}

// AddRow appends a row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// SetSeparator sets the column separator.
func (t *Table) SetSeparator(sep string) {
	t.separator = sep
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the header, a dashed rule and each row. Trailing padding and
// the separators of omitted trailing cells are trimmed.
func (t *Table) Render(w io.Writer) error {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return nil
	}

	widths := t.widths()
	var sb strings.Builder

	if len(t.headers) > 0 {
		t.writeRow(&sb, t.headers, widths)
		rule := make([]string, len(widths))
		for i, n := range widths {
			rule[i] = strings.Repeat("-", n)
		}
		t.writeRow(&sb, rule, widths)
	}
	for _, row := range t.rows {
		t.writeRow(&sb, row, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// String returns the rendered table.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) widths() []int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for _, row := range append([][]string{t.headers}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// writeRow pads each cell to its column width. Columns after the last
// non-empty cell are omitted, separators included.
func (t *Table) writeRow(sb *strings.Builder, cells []string, widths []int) {
	n := min(len(cells), len(widths))
	for n > 0 && cells[n-1] == "" {
		n--
	}

	var line strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			line.WriteString(t.separator)
		}
		line.WriteString(cells[i])
		if i < n-1 {
			line.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cells[i])))
		}
	}
	sb.WriteString(strings.TrimRight(line.String(), " "))
	sb.WriteByte('\n')
}
