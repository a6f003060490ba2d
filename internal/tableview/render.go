package tableview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout selects how a page is drawn. Both layouts render exactly the rows
// Page() yields; only the arrangement differs.
type Layout int

const (
	// LayoutCompact stacks each row as a small block, for narrow terminals.
	LayoutCompact Layout = iota
	// LayoutWide is a dense aligned column grid.
	LayoutWide
)

// wideMinWidth is the capability cutoff between the two layouts.
const wideMinWidth = 96

// ChooseLayout picks the layout for a terminal width.
func ChooseLayout(width int) Layout {
	if width >= wideMinWidth {
		return LayoutWide
	}
	return LayoutCompact
}

// Column describes one rendered column.
type Column struct {
	Title string
	Width int
}

// Styles carries the lipgloss styles the renderer needs; zero value renders
// unstyled.
type Styles struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
}

// Render draws the current page. cells extracts the displayed cell values of
// a row (distinct from the searchable fields), selected is the index into
// Page() to highlight, -1 for none.
func (v *View[T]) Render(cols []Column, cells func(T) []string, layout Layout, selected int, st Styles) string {
	rows := v.Page()
	if layout == LayoutWide {
		return renderWide(cols, rowsToCells(rows, cells), selected, st)
	}
	return renderCompact(cols, rowsToCells(rows, cells), selected, st)
}

func rowsToCells[T any](rows []T, cells func(T) []string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, cells(r))
	}
	return out
}

func renderWide(cols []Column, rows [][]string, selected int, st Styles) string {
	var b strings.Builder
	header := make([]string, 0, len(cols))
	for _, c := range cols {
		header = append(header, pad(c.Title, c.Width))
	}
	b.WriteString(st.Header.Render(strings.Join(header, "  ")))
	b.WriteByte('\n')

	for i, row := range rows {
		line := make([]string, 0, len(cols))
		for j, c := range cols {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			line = append(line, pad(cell, c.Width))
		}
		style := st.Row
		if i == selected {
			style = st.Selected
		}
		b.WriteString(style.Render(strings.Join(line, "  ")))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCompact(cols []Column, rows [][]string, selected int, st Styles) string {
	var b strings.Builder
	for i, row := range rows {
		style := st.Row
		marker := "  "
		if i == selected {
			style = st.Selected
			marker = "> "
		}
		// first column is the row's headline, the rest indent under it
		head := ""
		if len(row) > 0 {
			head = row[0]
		}
		b.WriteString(style.Render(marker + head))
		b.WriteByte('\n')
		for j := 1; j < len(cols) && j < len(row); j++ {
			if strings.TrimSpace(row[j]) == "" {
				continue
			}
			b.WriteString("    " + st.Label.Render(cols[j].Title+": ") + style.Render(row[j]))
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
