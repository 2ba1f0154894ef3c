package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table — простая таблица с выравниванием колонок по самой широкой ячейке.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) view(st Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// Padding(0,1) входит в Width
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	sep := st.Muted.Render("|")
	line := func(cells []string, style lipgloss.Style) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	line(t.headers, st.Header)
	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(st.Muted.Render(strings.Repeat("-", total+len(widths)-1)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		line(row, st.Cell)
	}
	return sb.String()
}
