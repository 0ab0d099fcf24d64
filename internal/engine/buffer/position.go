package buffer

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// ByteOffset represents a byte position in the buffer.
// This is the fundamental position type, directly indexing into the text.
type ByteOffset = int64

// Line describes one line of a document, without its terminator.
type Line struct {
	Number int        // 0-indexed line number
	Start  ByteOffset // Offset of the first byte of the line
	End    ByteOffset // Offset just before the line terminator
	Text   string     // Line content, excluding "\n" and a trailing "\r"
}

// String returns a human-readable representation of the line.
func (l Line) String() string {
	return fmt.Sprintf("Line(%d [%d:%d) %q)", l.Number, l.Start, l.End, l.Text)
}

// Range returns the span of the line.
func (l Line) Range() Range {
	return Range{Start: l.Start, End: l.End}
}

// IsBlank reports whether the line has no non-whitespace content.
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// LineAt returns the line of s containing offset.
// Offsets outside the document are clamped to it.
func LineAt(s string, offset ByteOffset) Line {
	offset = clamp(offset, len(s))

	start := strings.LastIndexByte(s[:offset], '\n') + 1
	end := len(s)
	if i := strings.IndexByte(s[offset:], '\n'); i >= 0 {
		end = int(offset) + i
	}
	if end > start && s[end-1] == '\r' {
		end--
	}

	return Line{
		Number: strings.Count(s[:start], "\n"),
		Start:  ByteOffset(start),
		End:    ByteOffset(end),
		Text:   s[start:end],
	}
}

// RuneToByte converts a rune (character) offset into a byte offset of s.
// Offsets past the end map to len(s).
func RuneToByte(s string, runes int) ByteOffset {
	if runes <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runes {
			return ByteOffset(i)
		}
		n++
	}
	return ByteOffset(len(s))
}

// ByteToRune converts a byte offset of s into a rune (character) offset.
func ByteToRune(s string, offset ByteOffset) int {
	return utf8.RuneCountInString(s[:clamp(offset, len(s))])
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
