package markdown

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/dshills/marksmith/internal/engine/buffer"
)

// Parser segments Markdown documents.
// A Parser is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a parser understanding GitHub Flavored Markdown.
func NewParser() *Parser {
	return &Parser{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

var defaultParser = NewParser()

// Parse segments doc with the default parser.
func Parse(doc string) []Segment {
	return defaultParser.Parse(doc)
}

// Parse splits doc into table and other segments in document order.
//
// Leading whitespace of the document and trailing whitespace at its end are
// dropped. Text between tables is kept verbatim; spans holding only
// whitespace produce no segment.
func (p *Parser) Parse(doc string) []Segment {
	src := []byte(doc)
	root := p.md.Parser().Parse(text.NewReader(src))

	var (
		segs  []Segment
		seen  = make(map[string]int)
		next  = len(doc) - len(strings.TrimLeftFunc(doc, unicode.IsSpace))
		limit = len(strings.TrimRightFunc(doc, unicode.IsSpace))
		id    int
	)

	flush := func(from, to int) {
		if to <= from || strings.TrimSpace(doc[from:to]) == "" {
			return
		}
		segs = append(segs, OtherSegment{
			Span: buffer.NewRange(buffer.ByteOffset(from), buffer.ByteOffset(to)),
			Text: doc[from:to],
		})
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		table, ok := n.(*east.Table)
		if !ok {
			continue
		}
		start, end, ok := tableSpan(src, table)
		if !ok {
			continue
		}

		flush(next, start)

		seg := tableSegment(src, table)
		seg.ID = id
		seg.Span = buffer.NewRange(buffer.ByteOffset(start), buffer.ByteOffset(end))
		seg.Raw = doc[start:end]
		seg.Occurrence = seen[seg.Raw]
		seen[seg.Raw]++
		segs = append(segs, seg)

		id++
		next = end
	}

	flush(next, limit)
	return segs
}

// tableSegment extracts the cells and alignments of t.
func tableSegment(src []byte, t *east.Table) TableSegment {
	seg := TableSegment{
		Align: make([]Align, len(t.Alignments)),
		Rows:  [][]string{},
	}
	for i, a := range t.Alignments {
		seg.Align[i] = alignFrom(a)
	}

	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cells := rowCells(src, row)
		if _, ok := row.(*east.TableHeader); ok {
			seg.Header = cells
			continue
		}
		seg.Rows = append(seg.Rows, cells)
	}
	if seg.Header == nil {
		seg.Header = []string{}
	}
	return seg
}

// rowCells returns the plain text of every cell of row. Cells the parser
// added to pad a short row have no source and are skipped.
func rowCells(src []byte, row ast.Node) []string {
	cells := []string{}
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Lines().Len() == 0 {
			continue
		}
		cells = append(cells, plainText(src, c))
	}
	return cells
}

// plainText returns the text content of n with inline markup removed.
func plainText(src []byte, n ast.Node) string {
	var b bytes.Buffer
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			v := n.Segment.Value(src)
			if !n.IsRaw() {
				v = util.ResolveNumericReferences(util.ResolveEntityNames(util.UnescapePunctuations(v)))
			}
			b.Write(v)
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.AutoLink:
			b.Write(n.Label(src))
		case *ast.RawHTML:
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				b.Write(seg.Value(src))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// tableSpan returns the byte span of t: whole lines from the header row to
// the last body row. The delimiter row sits between them and every row
// occupies exactly one line.
func tableSpan(src []byte, t *east.Table) (int, int, bool) {
	first := -1
	lines := 1 // delimiter row
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		if first < 0 {
			for c := row.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Lines().Len() > 0 {
					first = c.Lines().At(0).Start
					break
				}
			}
		}
		lines++
	}
	if first < 0 {
		return 0, 0, false
	}

	start := bytes.LastIndexByte(src[:first], '\n') + 1
	end := start
	for i := 0; i < lines; i++ {
		if i > 0 {
			if end >= len(src) {
				break
			}
			end++
		}
		if nl := bytes.IndexByte(src[end:], '\n'); nl >= 0 {
			end += nl
		} else {
			end = len(src)
		}
	}
	if end > start && src[end-1] == '\r' {
		end--
	}
	return start, end, true
}
