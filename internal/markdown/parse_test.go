package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/marksmith/internal/engine/buffer"
)

func TestParseTableBetweenParagraphs(t *testing.T) {
	doc := "A\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n\nB"

	got := Parse(doc)
	want := []Segment{
		OtherSegment{Span: buffer.NewRange(0, 3), Text: "A\n\n"},
		TableSegment{
			ID:     0,
			Span:   buffer.NewRange(3, 36),
			Raw:    "| a | b |\n| --- | --- |\n| 1 | 2 |",
			Header: []string{"a", "b"},
			Align:  []Align{AlignNone, AlignNone},
			Rows:   [][]string{{"1", "2"}},
		},
		OtherSegment{Span: buffer.NewRange(36, 39), Text: "\n\nB"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithoutTables(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"paragraph", "Hello world"},
		{"surrounding whitespace", "\n\n  # Title\n\nbody text\n\n\n"},
		{"list and code", "- one\n- two\n\n```go\nx := 1\n```\n"},
		{"pipes without delimiter row", "a | b\nc | d\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Parse(tt.doc)
			if len(segs) != 1 {
				t.Fatalf("expected 1 segment, got %d: %v", len(segs), segs)
			}
			other, ok := segs[0].(OtherSegment)
			if !ok {
				t.Fatalf("expected other segment, got %T", segs[0])
			}
			if want := strings.TrimSpace(tt.doc); other.Text != want {
				t.Errorf("expected %q, got %q", want, other.Text)
			}
			if other.Span.Slice(tt.doc) != other.Text {
				t.Errorf("span %s does not match text", other.Span)
			}
		})
	}
}

func TestParseWhitespaceOnly(t *testing.T) {
	for _, doc := range []string{"", "   ", "\n\n\t\n"} {
		if segs := Parse(doc); len(segs) != 0 {
			t.Errorf("Parse(%q) = %v, want no segments", doc, segs)
		}
	}
}

func TestParseTableCells(t *testing.T) {
	doc := "| **Name** | `code` | [link](http://x) |\n" +
		"| :--- | :---: | ---: |\n" +
		"| *x* | 1 &amp; 2 | esc \\| pipe |\n" +
		"| short |\n"

	tables := Tables(Parse(doc))
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	table := tables[0]

	if diff := cmp.Diff([]string{"Name", "code", "link"}, table.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Align{AlignLeft, AlignCenter, AlignRight}, table.Align); diff != "" {
		t.Errorf("align mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]string{
		{"x", "1 & 2", "esc | pipe"},
		{"short"},
	}
	if diff := cmp.Diff(wantRows, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if table.Raw != strings.TrimSuffix(doc, "\n") {
		t.Errorf("unexpected raw %q", table.Raw)
	}
}

func TestParseDuplicateTables(t *testing.T) {
	table := "| x |\n| --- |\n| 1 |"
	doc := table + "\n\ntext\n\n" + table + "\n\n| y |\n| --- |\n\n" + table + "\n"

	segs := Parse(doc)
	tables := Tables(segs)
	if len(tables) != 4 {
		t.Fatalf("expected 4 tables, got %d", len(tables))
	}

	wantOccurrence := []int{0, 1, 0, 2}
	for i, tbl := range tables {
		if tbl.ID != i {
			t.Errorf("table %d: expected ID %d, got %d", i, i, tbl.ID)
		}
		if tbl.Occurrence != wantOccurrence[i] {
			t.Errorf("table %d: expected occurrence %d, got %d", i, wantOccurrence[i], tbl.Occurrence)
		}
		if tbl.Span.Slice(doc) != tbl.Raw {
			t.Errorf("table %d: span %s does not match raw", i, tbl.Span)
		}
	}
	if len(tables[2].Rows) != 0 {
		t.Errorf("header-only table should have no rows, got %v", tables[2].Rows)
	}
}

func TestParseCoversDocument(t *testing.T) {
	doc := "# Notes\n\n| a |\n| --- |\n| 1 |\n| 2 |\n\nafter\n\n| b | c |\n|---|---|\n"

	segs := Parse(doc)
	if got := Join(segs); got != strings.TrimSpace(doc) {
		t.Errorf("segments do not reconstruct the document:\n%q\n%q", got, doc)
	}

	var prev buffer.ByteOffset
	for _, seg := range segs {
		r := seg.Bounds()
		if r.Start != prev {
			t.Errorf("gap before %s", r)
		}
		if r.Slice(doc) != seg.Markdown() {
			t.Errorf("segment %s text mismatch", r)
		}
		prev = r.End
	}
}

func TestAlignText(t *testing.T) {
	for _, a := range []Align{AlignNone, AlignLeft, AlignCenter, AlignRight} {
		b, err := a.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Align
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if got != a {
			t.Errorf("expected %s, got %s", a, got)
		}
	}
	if _, err := ParseAlign("justify"); err == nil {
		t.Error("expected error for unknown alignment")
	}
}
