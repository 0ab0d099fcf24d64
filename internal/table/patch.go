package table

import (
	"strings"

	"github.com/dshills/marksmith/internal/engine/buffer"
)

// Find returns the span of the occurrence-th non-overlapping literal match
// of raw in doc, counting from zero.
func Find(doc, raw string, occurrence int) (buffer.Range, bool) {
	if raw == "" || occurrence < 0 {
		return buffer.Range{}, false
	}
	offset := 0
	for i := 0; ; i++ {
		j := strings.Index(doc[offset:], raw)
		if j < 0 {
			return buffer.Range{}, false
		}
		start := offset + j
		if i == occurrence {
			return buffer.NewRange(buffer.ByteOffset(start), buffer.ByteOffset(start+len(raw))), true
		}
		offset = start + len(raw)
	}
}

// OccurrenceAt returns how many non-overlapping matches of raw start
// before offset.
func OccurrenceAt(doc, raw string, offset buffer.ByteOffset) int {
	if raw == "" {
		return 0
	}
	n, pos := 0, 0
	for {
		j := strings.Index(doc[pos:], raw)
		if j < 0 || buffer.ByteOffset(pos+j) >= offset {
			return n
		}
		n++
		pos += j + len(raw)
	}
}

// Locate finds a table in doc. When doc still holds raw at span, span is
// returned; otherwise the occurrence-th literal match of raw is used.
func Locate(doc string, span buffer.Range, raw string, occurrence int) (buffer.Range, bool) {
	if span.IsValid() && span.Start >= 0 && span.End <= buffer.ByteOffset(len(doc)) &&
		span.Slice(doc) == raw && raw != "" {
		return span, true
	}
	return Find(doc, raw, occurrence)
}

// Replace returns doc with span replaced by text, and the span text now
// occupies.
func Replace(doc string, span buffer.Range, text string) (string, buffer.Range) {
	out := doc[:span.Start] + text + doc[span.End:]
	return out, buffer.NewRange(span.Start, span.Start+buffer.ByteOffset(len(text)))
}

// Patch replaces the occurrence-th literal occurrence of raw in doc with
// the serialized table. Every other byte of doc, including other
// occurrences of raw, is left untouched. When doc holds no more than
// occurrence matches the anchor is stale and doc is returned unchanged.
func Patch(doc, raw string, occurrence int, header []string, rows [][]string) string {
	out, _ := PatchText(doc, raw, occurrence, Serialize(header, rows))
	return out
}

// PatchText is Patch with the replacement text already rendered. It
// reports whether the anchor was found.
func PatchText(doc, raw string, occurrence int, text string) (string, bool) {
	span, ok := Find(doc, raw, occurrence)
	if !ok {
		return doc, false
	}
	out, _ := Replace(doc, span, text)
	return out, true
}

// PatchSpan replaces the table anchored at span with text. The span is
// verified against raw first; if the document moved, the occurrence-th
// match of raw is patched instead. It returns the new document, the span
// of the written table and whether the anchor was found.
func PatchSpan(doc string, span buffer.Range, raw string, occurrence int, text string) (string, buffer.Range, bool) {
	at, ok := Locate(doc, span, raw, occurrence)
	if !ok {
		return doc, span, false
	}
	out, written := Replace(doc, at, text)
	return out, written, true
}
