package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table collects rows for a plain, borderless listing. Cells may carry ANSI
// styling; widths are measured on visible text.
type Table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: map[int]bool{}}
}

// Row appends one row. Missing trailing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// AlignRight right-aligns the given columns, e.g. amounts.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *Table) widths() []int {
	w := make([]int, len(t.headers))
	grow := func(cells []string) {
		for i := range w {
			if i < len(cells) {
				w[i] = max(w[i], lipgloss.Width(cells[i]))
			}
		}
	}
	grow(t.headers)
	for _, r := range t.rows {
		grow(r)
	}
	return w
}

// line joins cells padded to widths. The last column is only padded when it
// is right-aligned so lines carry no trailing blanks.
func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		switch {
		case t.right[i]:
			parts[i] = lipgloss.PlaceHorizontal(w, lipgloss.Right, cell)
		case i == len(widths)-1:
			parts[i] = cell
		default:
			parts[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, cell)
		}
	}
	return strings.Join(parts, columnGap)
}

// String renders the header, a dim rule, and every row.
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()

	header := make([]string, len(t.headers))
	rule := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = StyleAccent.Render(h)
		rule[i] = StyleMuted.Render(strings.Repeat("─", widths[i]))
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, t.line(header, widths), t.line(rule, widths))
	for _, r := range t.rows {
		lines = append(lines, t.line(r, widths))
	}
	return strings.Join(lines, "\n") + "\n"
}
