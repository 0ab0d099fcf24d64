package table

import (
	"strings"

	"github.com/dshills/marksmith/internal/markdown"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// EscapeCell makes s safe to place inside a table cell: pipes are
// backslash-escaped and line breaks (LF, CRLF or a lone CR) become spaces.
func EscapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// Serialize renders header and rows as a pipe table. Every row is padded
// or truncated to len(header) cells and the delimiter row carries no
// alignment. The result has no trailing newline.
func Serialize(header []string, rows [][]string) string {
	return SerializeAligned(header, nil, rows)
}

// SerializeAligned is Serialize with a delimiter row reflecting align.
// Columns beyond len(align) are unaligned.
func SerializeAligned(header []string, align []markdown.Align, rows [][]string) string {
	cols := len(header)

	var b strings.Builder
	writeRow(&b, header, cols)

	b.WriteString("\n|")
	for i := 0; i < cols; i++ {
		a := markdown.AlignNone
		if i < len(align) {
			a = align[i]
		}
		b.WriteString(" ")
		b.WriteString(a.Delimiter())
		b.WriteString(" |")
	}
	if cols == 0 {
		b.WriteString("  |")
	}

	for _, row := range rows {
		b.WriteString("\n")
		writeRow(&b, row, cols)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, cols int) {
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		var cell string
		if i < len(cells) {
			cell = EscapeCell(cells[i])
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
	if cols == 0 {
		b.WriteString("  |")
	}
}
