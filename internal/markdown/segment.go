package markdown

import (
	"fmt"

	"github.com/dshills/marksmith/internal/engine/buffer"
)

// Kind identifies the type of a segment.
type Kind uint8

const (
	KindOther Kind = iota
	KindTable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Segment is one contiguous piece of a document.
type Segment interface {
	// Kind returns the segment type.
	Kind() Kind

	// Bounds returns the byte span of the segment in the document.
	Bounds() buffer.Range

	// Markdown returns the source text of the segment.
	Markdown() string
}

// OtherSegment is document text that is not a table.
type OtherSegment struct {
	Span buffer.Range `json:"span" yaml:"span"`
	Text string       `json:"text" yaml:"text"`
}

func (s OtherSegment) Kind() Kind           { return KindOther }
func (s OtherSegment) Bounds() buffer.Range { return s.Span }
func (s OtherSegment) Markdown() string     { return s.Text }

// TableSegment is a pipe table.
type TableSegment struct {
	// ID is the index of the table among all tables of the document.
	ID int `json:"id" yaml:"id"`

	// Span covers the table from the start of its header line to the end of
	// its last row, without the final line terminator.
	Span buffer.Range `json:"span" yaml:"span"`

	// Raw is the exact source text of Span.
	Raw string `json:"raw" yaml:"raw"`

	Header []string   `json:"header" yaml:"header"`
	Align  []Align    `json:"align" yaml:"align"`
	Rows   [][]string `json:"rows" yaml:"rows"`

	// Occurrence is the ordinal of Raw among the tables with identical
	// source text that precede this one.
	Occurrence int `json:"occurrence" yaml:"occurrence"`
}

func (s TableSegment) Kind() Kind           { return KindTable }
func (s TableSegment) Bounds() buffer.Range { return s.Span }
func (s TableSegment) Markdown() string     { return s.Raw }

// Columns returns the number of header columns.
func (s TableSegment) Columns() int {
	return len(s.Header)
}

// String returns a short description of the table.
func (s TableSegment) String() string {
	return fmt.Sprintf("Table#%d %s %dx%d", s.ID, s.Span, len(s.Header), len(s.Rows))
}

// Tables returns the table segments of segs in document order.
func Tables(segs []Segment) []TableSegment {
	var tables []TableSegment
	for _, seg := range segs {
		if t, ok := seg.(TableSegment); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Join concatenates the source text of segs.
func Join(segs []Segment) string {
	var n int
	for _, seg := range segs {
		n += len(seg.Markdown())
	}
	b := make([]byte, 0, n)
	for _, seg := range segs {
		b = append(b, seg.Markdown()...)
	}
	return string(b)
}
