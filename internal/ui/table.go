package ui

import (
	"strings"
	"unicode/utf8"
)

const cellMaxWidth = 40
const cellEllipsis = "..."

// TableBuilder collects rows and renders an aligned table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

func (b *TableBuilder) AddRow(row []string) {
	b.rows = append(b.rows, row)
}

func (b *TableBuilder) String() string {
	return FormatTable(b.headers, b.rows)
}

// FormatTable renders headers and rows as a space-aligned table.
// Column widths ignore ANSI escape sequences, so styled cells align
// with plain ones.
func FormatTable(headers []string, rows [][]string) string {
	clean := func(row []string) []string {
		out := make([]string, len(row))
		for i, cell := range row {
			out[i] = flattenCell(cell)
		}
		return out
	}

	headers = clean(headers)
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visibleWidth(h)
	}

	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		row = clean(row)
		cleaned = append(cleaned, row)
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var out strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			out.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			out.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(cell)+2))
		}
		out.WriteByte('\n')
	}

	writeRow(headers)
	for _, row := range cleaned {
		writeRow(row)
	}
	return out.String()
}

// TruncateCell limits a cell's visible width, appending an ellipsis
// when it was cut.
func TruncateCell(value string) string {
	value = flattenCell(value)
	if visibleWidth(value) <= cellMaxWidth {
		return value
	}
	return truncateVisible(value, cellMaxWidth-len(cellEllipsis)) + cellEllipsis
}

func flattenCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func visibleWidth(value string) int {
	return utf8.RuneCountInString(stripANSI(value))
}

func truncateVisible(value string, max int) string {
	if max <= 0 {
		return ""
	}
	var out strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' && i+1 < len(value) && value[i+1] == '[' {
			end := i + 2
			for end < len(value) && value[end] != 'm' {
				end++
			}
			if end < len(value) {
				end++
			}
			out.WriteString(value[i:end])
			i = end
			continue
		}
		if visible >= max {
			break
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		out.WriteRune(r)
		visible++
		i += size
	}
	return out.String()
}

func stripANSI(value string) string {
	var out strings.Builder
	inEscape := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
			continue
		}
		if c == '\x1b' {
			inEscape = true
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}
