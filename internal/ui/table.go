package ui

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	tableCellMaxWidth = 50
	tableCellEllipsis = "..."
	tableColumnGap    = "  "
)

// tableViewportWidth reports the terminal width, or 0 when unknown.
// Overridable in tests.
var tableViewportWidth = func() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned table. Cell text
// is flattened to one line; lines wider than the terminal viewport are
// truncated. Column widths are sized to content, so width math has to
// ignore ANSI escapes.
func FormatTable(headers []string, rows [][]string) string {
	header := flattenRow(headers)
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = flattenRow(row)
	}

	widths := columnWidths(header, body)
	viewport := tableViewportWidth()

	var out strings.Builder
	out.WriteString(renderRow(header, widths, viewport))
	for _, row := range body {
		out.WriteString(renderRow(row, widths, viewport))
	}
	return out.String()
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = displayWidth(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func renderRow(row []string, widths []int, viewport int) string {
	var line strings.Builder
	for i, cell := range row {
		line.WriteString(cell)
		if i == len(row)-1 {
			break
		}
		padding := 0
		if i < len(widths) {
			padding = widths[i] - displayWidth(cell)
		}
		if padding > 0 {
			line.WriteString(strings.Repeat(" ", padding))
		}
		line.WriteString(tableColumnGap)
	}

	rendered := line.String()
	if viewport > 0 && displayWidth(rendered) > viewport {
		rendered = truncateVisible(rendered, viewport)
	}
	return rendered + "\n"
}

func flattenRow(row []string) []string {
	flattened := make([]string, len(row))
	for i, cell := range row {
		flattened[i] = flattenTableCell(cell)
	}
	return flattened
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = flattenTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}

	max := tableCellMaxWidth - displayWidth(tableCellEllipsis)
	if max <= 0 {
		return tableCellEllipsis
	}
	return truncateVisible(value, max) + tableCellEllipsis
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(stripANSICodes(value))
}

func flattenTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

// truncateVisible cuts value down to max visible runes, carrying ANSI
// escape sequences through unchanged so earlier styling isn't lost.
func truncateVisible(value string, max int) string {
	if max <= 0 {
		return ""
	}

	var builder strings.Builder
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
			builder.WriteString(value[i:end])
			i = end
			continue
		}

		if visible >= max {
			break
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteByte(value[i])
		} else {
			builder.WriteRune(r)
		}
		visible++
		i += size
	}
	return builder.String()
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
